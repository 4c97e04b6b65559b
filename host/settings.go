// Copyright 2026 The retromon authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings is the resource table behind the resourceget/resourceset
// commands. Names resolve by unique prefix, case-insensitively.
type settings struct {
	MemDumpBytes    int  `doc:"default number of memory bytes to display"`
	DisasmLines     int  `doc:"default number of bytes to disassemble"`
	NextDisplayAddr int  `doc:"address of next memory display"`
	TapeOffset      int  `doc:"tape image offset"`
	KeybufDelay     int  `doc:"keyboard buffer feed delay"`
	AutostartWarp   bool `doc:"use warp mode during autostart"`
	DriveTrueEmu    bool `doc:"true drive emulation"`
	ScrshotFormat   int  `doc:"default screenshot format"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes:  96,
		DisasmLines:   32,
		AutostartWarp: true,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		fmt.Fprintf(w, "    %-16s %-6v (%s)\n", f.name, value.Field(i), f.doc)
	}
}

// Get returns a resource value by prefix-resolved name.
func (s *settings) Get(key string) (any, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(s).Elem().Field(f.index).Interface(), nil
}

// SetFromString parses and stores a resource value given as text.
func (s *settings) SetFromString(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}
	out := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Bool:
		b, err := stringToBool(value)
		if err != nil {
			return err
		}
		out.SetBool(b)
	case reflect.Int:
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return err
		}
		out.SetInt(n)
	default:
		return errors.New("unsupported resource type")
	}
	return nil
}

// Resource files hold one "Name=value" pair per line.

func (s *settings) LoadFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if err := s.SetFromString(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("resource %q: %w", key, err)
		}
	}
	return nil
}

func (s *settings) SaveFile(name string) error {
	var sb strings.Builder
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		fmt.Fprintf(&sb, "%s=%v\n", f.name, value.Field(i))
	}
	return os.WriteFile(name, []byte(sb.String()), 0644)
}
