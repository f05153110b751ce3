// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_AddPrinter(t *testing.T) {
	p := NewPrinters()
	p.AddPrinter(&PrinterToWriter{}).AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, len(p.printers))
}

func TestPrinter_Print(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := &Printers{[]Printer{first, second}}

	gomock.InOrder(
		first.EXPECT().Print().Return(nil),
		second.EXPECT().Print().Return(nil),
	)
	assert.NoError(t, p.Print())
}

func TestPrinter_PrintStopsOnFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := &Printers{[]Printer{first, second}}

	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinter_CloseClosesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := &Printers{[]Printer{first, second}}

	mockErr := errors.New("mock error")
	first.EXPECT().Close().Return(mockErr)
	second.EXPECT().Close().Return(nil)
	assert.ErrorIs(t, p.Close(), mockErr)
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	p := NewPrinters()
	p.AddPrinterToConsole(false, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = NewPrinters()
	p.AddPrinterToConsole(true, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	p := NewPrinters()
	p.AddPrinterToFile("test.txt", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = NewPrinters()
	p.AddPrinterToFile("", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinters().AddPrinterToWriter(&buf, func() string {
		return "Hello, World!"
	})
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string {
		return "Hello, World!"
	})
	assert.NotNil(t, p)
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NotNil(t, p.f)
}

func TestPrinterToFile_PrintAppends(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "summary.txt")
	p := NewPrinterToFile(filePath, func() string {
		return "Hello, World!"
	})
	require.NoError(t, p.Print())
	require.NoError(t, p.Print())
	assert.NoError(t, p.Close())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!\nHello, World!\n", string(data))
}

func TestPrinterToFile_PrintFailsOnMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "summary.txt"), func() string {
		return "Hello, World!"
	})
	assert.Error(t, p.Print())
}
