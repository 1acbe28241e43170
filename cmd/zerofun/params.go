package main

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/copyleftdev/zerofun/internal/dispatch"
	apperrors "github.com/copyleftdev/zerofun/internal/errors"
)

// applyOverrides applies key=value assignments to p. Keys use the datafile
// names; bracket.enabled and bracket.x1 reach the nested section.
func applyOverrides(p *dispatch.Params, assignments []string) error {
	for _, kv := range assignments {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "override %q is not key=value", kv).
				WithOperation("override").
				WithComponent("cli")
		}

		var doc bytes.Buffer
		path := strings.Split(key, ".")
		for depth, part := range path {
			doc.WriteString(strings.Repeat("  ", depth))
			doc.WriteString(part)
			doc.WriteString(":")
			if depth < len(path)-1 {
				doc.WriteString("\n")
			}
		}
		fmt.Fprintf(&doc, " %s\n", strings.TrimSpace(value))

		dec := yaml.NewDecoder(&doc)
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "override %q: %v", kv, err).
				WithOperation("override").
				WithComponent("cli")
		}
	}
	return nil
}
