package main

import (
	"reflect"
	"testing"

	"github.com/wbrown/typefont"
)

func TestNilProgress(t *testing.T) {
	var p *progress
	p.update("font", nil, 0.5)
	p.stop()
}

func TestSymbolKeys(t *testing.T) {
	r := typefont.FontResult{Symbols: map[string]typefont.SymbolScore{
		"b": {}, "a": {}, "Z": {},
	}}
	got := symbolKeys(r)
	want := []string{"Z", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("symbolKeys() = %v, want %v", got, want)
	}
}
