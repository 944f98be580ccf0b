// Package schema declares the record types the application validates, the
// way each type's fields map onto source columns, and the business rules
// that span fields. Definitions are static; there is no runtime discovery.
package schema

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
)

// Order type values accepted by the Type column.
const (
	OrderTypeSale   = "Sale"
	OrderTypeRefund = "Refund"
)

// HighAmountThreshold is the value above which an order amount is flagged as
// unusually high. Flagged rows stay valid; the flag is a warning.
var HighAmountThreshold = 500.0

// Order is one order line as it appears in the source sheet: OrderId,
// ItemCode, Amount, Type, CustomerName in columns 1-5.
type Order struct {
	OrderID      core.Field[int]
	ItemCode     core.Field[string]
	Amount       core.Field[pgtype.Numeric]
	Type         core.Field[string]
	CustomerName core.Field[string]
}

// NewOrder constructs an order with its declared field rules attached.
func NewOrder() *Order {
	o := &Order{}

	o.OrderID.Required = true

	o.ItemCode.Required = true
	o.ItemCode.Validate(func(s string) bool { return len(s) >= 3 },
		"ItemCode must have at least 3 characters.")

	// Amounts arrive with either ',' or '.' as the decimal separator
	// depending on which locale exported the sheet.
	o.Amount.Parse = ParseAmount

	o.Type.Required = true
	o.Type.Validate(func(s string) bool {
		return strings.EqualFold(s, OrderTypeSale) || strings.EqualFold(s, OrderTypeRefund)
	}, "Type must be 'Sale' or 'Refund'.")

	o.CustomerName.Required = true

	return o
}

// OrderDef is the record definition the pipeline consumes. Field order is
// the declared column order; positions are assigned sequentially.
func OrderDef() core.RecordDef[Order] {
	return core.RecordDef[Order]{
		New: NewOrder,
		Fields: func(o *Order) []core.Bound {
			return []core.Bound{
				{Name: "OrderId", Cell: &o.OrderID},
				{Name: "ItemCode", Cell: &o.ItemCode},
				{Name: "Amount", Cell: &o.Amount},
				{Name: "Type", Cell: &o.Type},
				{Name: "CustomerName", Cell: &o.CustomerName},
			}
		},
	}
}

// OrderRules returns the standard cross-field rules for orders, in the
// order they run.
func OrderRules() []core.RowValidator[Order] {
	return []core.RowValidator[Order]{
		RefundRequiresPositiveAmount,
		FlagUnusuallyHighAmount,
	}
}

// ParseAmount parses a decimal amount accepting both ',' and '.' as the
// decimal separator. A lone comma is treated as a decimal point; mixed
// usage ("1,234.56") falls through to the standard thousands handling.
func ParseAmount(raw string) (pgtype.Numeric, bool, string) {
	s := strings.TrimSpace(raw)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	n := core.ToNumeric(s)
	if !n.Valid {
		return pgtype.Numeric{}, false, "Amount has an invalid value."
	}
	return n, true, ""
}

// RefundRequiresPositiveAmount rejects refund rows whose amount is zero or
// negative. The failure is a row error: it concerns the Type/Amount pair,
// not either cell alone.
func RefundRequiresPositiveAmount(res *core.Result[Order]) {
	o := res.Record
	if !strings.EqualFold(o.Type.Value, OrderTypeRefund) {
		return
	}
	if v, ok := amountFloat(o.Amount.Value); ok && v <= 0 {
		res.AddRowError("For 'Refund' rows, Amount must be positive.")
	}
}

// FlagUnusuallyHighAmount warns on amounts above HighAmountThreshold.
func FlagUnusuallyHighAmount(res *core.Result[Order]) {
	o := res.Record
	if v, ok := amountFloat(o.Amount.Value); ok && v > HighAmountThreshold {
		o.Amount.Warn("Amount is unusually high.")
	}
}

func amountFloat(n pgtype.Numeric) (float64, bool) {
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, true
}
