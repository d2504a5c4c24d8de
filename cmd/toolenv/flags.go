// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// formatValue is the --output flag; it rejects unknown formats at parse time.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string {
	if *f == "" {
		return "default"
	}
	return string(*f)
}

func (f *formatValue) Set(s string) error {
	switch s {
	case "default", "json":
		*f = formatValue(s)
		return nil
	}
	return fmt.Errorf("must be one of: default, json")
}

func (f *formatValue) Type() string {
	return "format"
}

// changedFlags returns the names of flags set on the command line, for
// debug logging of effective settings.
func changedFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.Visit(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	return names
}
