package core

// validation.go orders the two validation levels for one record.
//
// Row validators run first: they may attach additional field validators, set
// row errors or warnings, and inspect parsed values across fields. Only then
// does the field-level pass run, so dynamically attached validators are
// always honored and the authoritative field state is read after every rule
// has had its chance. A row validator that panics is converted into a row
// error; one misbehaving rule never takes down the row or the run.

import "fmt"

func (p *Pipeline[R]) validate(res *Result[R]) {
	for _, rv := range p.validators {
		runRowValidator(rv, res)
	}

	for i, b := range res.bound {
		b.Cell.runValidators(cellRef{
			Field:  b.Name,
			Row:    res.RowNumber,
			Column: p.schema.positions[i],
		})
	}
}

// runRowValidator invokes one row validator, containing any panic as a
// row-level error so the remaining validators still run.
func runRowValidator[R any](rv RowValidator[R], res *Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res.AddRowError(fmt.Sprintf("row validator failed: %v", r))
		}
	}()
	rv(res)
}
