package acquisition_test

import (
	"testing"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

func TestClassifyFilename(t *testing.T) {
	tests := []struct {
		name string
		want acquisition.Category
	}{
		{"PCAP.pdf", acquisition.CategoryAdmin},
		{"Pliego_Cláusulas_Administrativas.pdf", acquisition.CategoryAdmin},
		{"CARATULA.pdf", acquisition.CategoryAdmin},
		{"informe_juridico.pdf", acquisition.CategoryAdmin},
		{"Pliego_Prescripciones_Tecnicas.pdf", acquisition.CategoryTech},
		{"PPT_lote1.pdf", acquisition.CategoryTech},
		{"Memoria valorada.pdf", acquisition.CategoryTech},
		{"proyecto_basico.zip", acquisition.CategoryTech},
		{"anexo_I.pdf", acquisition.CategoryUnknown},
		{"documento_1700000000000.pdf", acquisition.CategoryUnknown},
		{"Pliego clausulas y prescripciones tecnicas.pdf", acquisition.CategoryAdmin},
		{"tecnico/PCAP.pdf", acquisition.CategoryAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acquisition.ClassifyFilename(tt.name); got != tt.want {
				t.Errorf("ClassifyFilename(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		name      string
		link      acquisition.LinkContext
		wantAdmin bool
		wantTech  bool
	}{
		{
			name:      "admin by text",
			link:      acquisition.LinkContext{Text: "Pliego de Cláusulas Administrativas", Href: "/doc?id=1"},
			wantAdmin: true,
		},
		{
			name:     "tech by title",
			link:     acquisition.LinkContext{Text: "Descargar", Title: "Pliego de Prescripciones Técnicas", Href: "/doc?id=2"},
			wantTech: true,
		},
		{
			name:      "admin by aria label",
			link:      acquisition.LinkContext{AriaLabel: "Bases de la convocatoria", Href: "/x"},
			wantAdmin: true,
		},
		{
			name:      "admin annex by href",
			link:      acquisition.LinkContext{Text: "Ver", Href: "/files/Anexo_II.pdf"},
			wantAdmin: true,
		},
		{
			name:     "tech by class",
			link:     acquisition.LinkContext{Class: "link-memoria", Href: "/y"},
			wantTech: true,
		},
		{
			name:      "both",
			link:      acquisition.LinkContext{Text: "Pliegos administrativo y técnico"},
			wantAdmin: true,
			wantTech:  true,
		},
		{
			name: "neither",
			link: acquisition.LinkContext{Text: "Inicio", Href: "/home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, tech := acquisition.ClassifyLink(tt.link)
			if admin != tt.wantAdmin || tech != tt.wantTech {
				t.Errorf("ClassifyLink = (%v, %v), want (%v, %v)", admin, tech, tt.wantAdmin, tt.wantTech)
			}
		})
	}
}
