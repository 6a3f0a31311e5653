// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"strings"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

func year(y int) *int { return &y }

// Demo sources.
var (
	sourceFAO = model.Source{
		Title:               "Guías alimentarias basadas en alimentos para la población hondureña",
		Organization:        "Organización de las Naciones Unidas para la Alimentación y la Agricultura",
		OrganizationAcronym: "FAO",
		Year:                year(2022),
		Author:              "FAO",
		Link:                "https://www.fao.org/nutrition/education/food-based-dietary-guidelines",
		Similarity:          "0.89",
	}
	sourceOPS = model.Source{
		Title:               "Prevención de enfermedades crónicas no transmisibles en Latinoamérica",
		Organization:        "Organización Panamericana de la Salud",
		OrganizationAcronym: "OPS",
		Year:                year(2023),
		Author:              "OPS",
		Link:                "https://www.paho.org/es/temas/enfermedades-no-transmisibles",
		Similarity:          "0.86",
	}
	sourceSESAL = model.Source{
		Title:               "Guías Alimentarias Basadas en Alimentos para Honduras",
		Organization:        "Secretaría de Salud de Honduras",
		OrganizationAcronym: "SESAL",
		Year:                year(2021),
		Author:              "SESAL",
		Link:                "https://www.salud.gob.hn",
		Similarity:          "0.92",
	}
)

const answerPortions = `Según las **Guías Alimentarias Basadas en Alimentos (GABA)** de Honduras, para niños de 7 años se recomienda:

### Porciones de Verduras
- **3-4 porciones** al día
- Cada porción equivale a:
  - 1 taza de verduras de hoja verde crudas
  - 1/2 taza de verduras cocidas

### Alimentos Locales Recomendados
- Güisquil (chayote)
- Tomate
- Zanahoria

La **fibra** de las verduras ayuda a prevenir el estreñimiento y contribuye a un peso saludable.`

const answerSodium = `Para **reducir el sodio** según las guías nacionales:

1. Limita la sal añadida a menos de 5 g al día (menos de 2 g de sodio)
2. Prefiere hierbas y especias naturales para sazonar
3. Revisa las etiquetas de alimentos procesados y embutidos
4. Evita consomés y sopas instantáneas

Reducir el consumo de sodio ayuda a prevenir la hipertensión y las enfermedades cardiovasculares.`

const answerGeneral = `Una alimentación equilibrada incluye **5 porciones de frutas y verduras** al día, cereales integrales, leguminosas como frijoles y proteínas magras.

- Bebe agua natural en lugar de bebidas azucaradas
- Prefiere alimentos locales y de temporada
- Mantén horarios regulares de comida`

const answerBMI = "El **índice de masa corporal (IMC)** relaciona tu peso con tu altura:\n\n" +
	"```text\nIMC = peso (kg) / altura (m)²\nEjemplo: 70 / (1.75 × 1.75) = 22.9\n```\n\n" +
	"Un IMC entre 18.5 y 24.9 se considera adecuado en adultos. No sustituye la valoración de un profesional de salud."

const clinicalPreamble = "Teniendo en cuenta tu información clínica, estas recomendaciones son orientativas; consulta a tu profesional de salud antes de cambios importantes.\n\n"

// answerFor picks a canned answer and its sources.
func answerFor(query string, clinical *model.ClinicalData) (string, []model.Source) {
	q := strings.ToLower(query)

	var answer string
	var sources []model.Source
	switch {
	case strings.Contains(q, "sodio") || strings.Contains(q, "sal "):
		answer, sources = answerSodium, []model.Source{sourceOPS, sourceSESAL}
	case strings.Contains(q, "imc"):
		answer, sources = answerBMI, []model.Source{sourceOPS}
	case strings.Contains(q, "porci") || strings.Contains(q, "gaba"):
		answer, sources = answerPortions, []model.Source{sourceSESAL, sourceFAO}
	default:
		answer, sources = answerGeneral, []model.Source{sourceFAO}
	}

	if clinical != nil && !clinical.IsEmpty() {
		answer = clinicalPreamble + answer
	}
	return answer, sources
}
