package repository

import "github.com/jackc/pgx/v5/pgtype"

// floatFromNumeric converts an exact ledger value to a display float at the
// read boundary. Amounts are never written back from this representation.
func floatFromNumeric(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, nil
	}
	val, err := n.Float64Value()
	if err != nil {
		return 0, err
	}
	return val.Float64, nil
}
