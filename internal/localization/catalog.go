// Package localization renders named notification templates per reseller.
// Templates come from a backing source (Postgres in production) with
// built-in defaults as fallback.
package localization

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"
)

// Source supplies a reseller's override for a template key. Implementations
// return "" with a nil error when no override exists.
type Source interface {
	Template(ctx context.Context, resellerID int64, key string) (string, error)
}

// defaults are the built-in template texts used when a reseller carries
// no override. Variables use Go template syntax over the notification
// variable bag.
var defaults = map[string]string{
	"NewPositionAdded":              "A new return position has been added.",
	"PositionStatusHasChanged":      "Return status has changed from {{.FROM}} to {{.TO}}.",
	"complaintEmployeeEmailSubject": "Return {{.COMPLAINT_NUMBER}}: status update",
	"complaintEmployeeEmailBody": "Complaint {{.COMPLAINT_NUMBER}} (id {{.COMPLAINT_ID}})\n" +
		"Client: {{.CLIENT_NAME}} (id {{.CLIENT_ID}})\n" +
		"Consumption: {{.CONSUMPTION_NUMBER}} (id {{.CONSUMPTION_ID}})\n" +
		"Agreement: {{.AGREEMENT_NUMBER}}\n" +
		"Created by {{.CREATOR_NAME}}, expert {{.EXPERT_NAME}}\n" +
		"Date: {{.DATE}}\n\n" +
		"{{.DIFFERENCES}}\n",
	"complaintClientEmailSubject": "Your return {{.COMPLAINT_NUMBER}}",
	"complaintClientEmailBody": "Dear {{.CLIENT_NAME}},\n\n" +
		"{{.DIFFERENCES}}\n\n" +
		"Complaint: {{.COMPLAINT_NUMBER}}\n" +
		"Agreement: {{.AGREEMENT_NUMBER}}\n" +
		"Date: {{.DATE}}\n",
}

// Catalog resolves and renders localized templates. A nil source serves
// defaults only.
type Catalog struct {
	source Source
}

// NewCatalog creates a catalog over the given template source.
func NewCatalog(source Source) *Catalog {
	return &Catalog{source: source}
}

// Localize renders the template for key with the given variable bag,
// preferring the reseller's override over the built-in default.
func (c *Catalog) Localize(ctx context.Context, key string, vars map[string]string, resellerID int64) (string, error) {
	text, err := c.lookup(ctx, resellerID, key)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("unknown template key %q", key)
	}
	return render(key, text, vars)
}

func (c *Catalog) lookup(ctx context.Context, resellerID int64, key string) (string, error) {
	if c.source != nil {
		text, err := c.source.Template(ctx, resellerID, key)
		if err != nil {
			// A broken source degrades to defaults rather than failing the render.
			slog.Warn("Template source lookup failed, using default",
				"key", key,
				"reseller_id", resellerID,
				"error", err,
			)
		} else if text != "" {
			return text, nil
		}
	}
	return defaults[key], nil
}

// render executes a template string with missing keys defaulting to zero values.
func render(key, src string, vars map[string]string) (string, error) {
	t, err := template.New(key).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", key, err)
	}
	if vars == nil {
		vars = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", key, err)
	}
	return buf.String(), nil
}
