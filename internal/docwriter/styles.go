// =============================================================================
// PaymentMaker - Document Styles
// =============================================================================
//
// Shared cell styles for the generated invoice and act sheets. Excelize style
// IDs are scoped to one workbook, so a styleSet is built per file and handed
// to the sheet writers.
//
// The visual language is deliberately plain: Arial 10 for body text, Arial 8
// for dense requisites blocks, Arial 12 bold for the document title, a light
// gray fill on table headers, and the "#,##0.00" number format on every
// monetary cell.
//
// =============================================================================

package docwriter

import (
	"github.com/xuri/excelize/v2"
)

// moneyFormat is the number format applied to price, amount and total cells.
const moneyFormat = "#,##0.00"

// styleSet holds the compiled style IDs for one workbook.
type styleSet struct {
	// header is Arial 10 bold with a gray fill, thin border and centered
	// text (table header cells).
	header int

	// bold is Arial 10 bold with no border (totals labels, signatures).
	bold int

	// boldRight is Arial 10 bold aligned right ("Итого:" labels).
	boldRight int

	// boldMoney is Arial 10 bold with a thin border and the money format
	// (total amount cells).
	boldMoney int

	// boldBordered is Arial 10 bold with a thin border (the "-" VAT cell).
	boldBordered int

	// normal is plain Arial 10.
	normal int

	// normalCentered is Arial 10, centered, with a thin border (table body
	// cells except the description).
	normalCentered int

	// money is Arial 10, centered, thin border, money format.
	money int

	// small is Arial 8 (requisites and account numbers).
	small int

	// smallWrap is Arial 8 with wrapped text (party detail blocks).
	smallWrap int

	// smallWrapBordered is Arial 8, wrapped, with a thin border (service
	// description cells).
	smallWrapBordered int

	// wrap is Arial 10 with wrapped text (the conclusion paragraph).
	wrap int

	// thinBordered is plain Arial 10 with a thin border on all sides (the
	// bank requisites grid).
	thinBordered int

	// thickBottom is Arial 12 bold over a border that is thin on three
	// sides and thick at the bottom (the title row separator).
	thickBottom int
}

var thinBorder = []excelize.Border{
	{Type: "left", Style: 1, Color: "000000"},
	{Type: "right", Style: 1, Color: "000000"},
	{Type: "top", Style: 1, Color: "000000"},
	{Type: "bottom", Style: 1, Color: "000000"},
}

var thickBottomBorder = []excelize.Border{
	{Type: "left", Style: 1, Color: "000000"},
	{Type: "right", Style: 1, Color: "000000"},
	{Type: "top", Style: 1, Color: "000000"},
	{Type: "bottom", Style: 5, Color: "000000"},
}

var headerFill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}}

// newStyleSet compiles every style the sheet writers use into the workbook.
func newStyleSet(f *excelize.File) (*styleSet, error) {
	money := moneyFormat

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	right := &excelize.Alignment{Horizontal: "right", Vertical: "center"}
	wrapped := &excelize.Alignment{WrapText: true, Vertical: "center"}

	arial := func(size float64, bold bool) *excelize.Font {
		return &excelize.Font{Family: "Arial", Size: size, Bold: bold}
	}

	b := &styleBuilder{file: f}

	s := &styleSet{
		header: b.add(&excelize.Style{
			Font:      arial(10, true),
			Alignment: center,
			Border:    thinBorder,
			Fill:      headerFill,
		}),
		bold: b.add(&excelize.Style{
			Font: arial(10, true),
		}),
		boldRight: b.add(&excelize.Style{
			Font:      arial(10, true),
			Alignment: right,
		}),
		boldMoney: b.add(&excelize.Style{
			Font:         arial(10, true),
			Border:       thinBorder,
			CustomNumFmt: &money,
		}),
		boldBordered: b.add(&excelize.Style{
			Font:   arial(10, true),
			Border: thinBorder,
		}),
		normal: b.add(&excelize.Style{
			Font: arial(10, false),
		}),
		normalCentered: b.add(&excelize.Style{
			Font:      arial(10, false),
			Alignment: center,
			Border:    thinBorder,
		}),
		money: b.add(&excelize.Style{
			Font:         arial(10, false),
			Alignment:    center,
			Border:       thinBorder,
			CustomNumFmt: &money,
		}),
		small: b.add(&excelize.Style{
			Font: arial(8, false),
		}),
		smallWrap: b.add(&excelize.Style{
			Font:      arial(8, false),
			Alignment: wrapped,
		}),
		smallWrapBordered: b.add(&excelize.Style{
			Font:      arial(8, false),
			Alignment: wrapped,
			Border:    thinBorder,
		}),
		wrap: b.add(&excelize.Style{
			Font:      arial(10, false),
			Alignment: wrapped,
		}),
		thinBordered: b.add(&excelize.Style{
			Font:   arial(10, false),
			Border: thinBorder,
		}),
		thickBottom: b.add(&excelize.Style{
			Font:      arial(12, true),
			Alignment: center,
			Border:    thickBottomBorder,
		}),
	}

	if b.err != nil {
		return nil, b.err
	}
	return s, nil
}

// styleBuilder collects NewStyle calls and remembers the first failure, so
// the style table above stays declarative.
type styleBuilder struct {
	file *excelize.File
	err  error
}

func (b *styleBuilder) add(style *excelize.Style) int {
	if b.err != nil {
		return 0
	}
	id, err := b.file.NewStyle(style)
	if err != nil {
		b.err = err
		return 0
	}
	return id
}
