package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		{"latin", 'a', LTR},
		{"cyrillic", 'Ж', LTR},
		{"greek", 'λ', LTR},
		{"cjk", '表', LTR},
		{"hiragana", 'あ', LTR},
		{"arabic alif", 'ا', RTL},
		{"arabic presentation form", 'ﻻ', RTL},
		{"hebrew alef", '\u05d0', RTL},
		{"syriac", 'ܐ', RTL},
		{"thaana", 'ހ', RTL},
		{"digit", '7', Neutral},
		{"arabic-indic digit", '٣', Neutral},
		{"punctuation", ',', Neutral},
		{"space", ' ', Neutral},
		{"newline", '\n', Neutral},
		{"currency", '$', Neutral},
		{"combining accent", '\u0301', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CharDirection(tt.char))
		})
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Direction
	}{
		{"empty", "", Neutral},
		{"numbers", "12.50 %", Neutral},
		{"english", "Total", LTR},
		{"hebrew", "שלום", RTL},
		{"arabic with digits", "مرحبا 42", RTL},
		{"mostly latin", "ID א", LTR},
		{"tie", "aא", LTR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDirection(tt.in))
		})
	}
}
