package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Encode serializes collected values in the requested format. Keys are the
// field ids formatted with fmt.
func Encode[T comparable](values map[T]model.Value, format OutputFormat) ([]byte, error) {
	keys := make([]string, 0, len(values))
	byKey := make(map[string]model.Value, len(values))
	for id, value := range values {
		key := fmt.Sprint(id)
		keys = append(keys, key)
		byKey[key] = value
	}
	sort.Strings(keys)

	switch format {
	case "", OutputFormatJSON:
		payload, err := json.MarshalIndent(byKey, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, key := range keys {
			form.Set(key, byKey[key].String())
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %s\n", key, byKey[key].String())
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}
