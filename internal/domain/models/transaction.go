package models

import (
	"strings"
	"time"
)

// TransactionKind enumerates ledger entry categories. Older records persisted
// before the kind field existed carry an empty kind and are classified from
// their description text instead.
type TransactionKind string

const (
	KindSale    TransactionKind = "sale"
	KindExpense TransactionKind = "expense"
	KindPayment TransactionKind = "payment"
)

// legacyBirdSaleMarker is the exact phrase historical records used to tag
// bird sales. The match is case-sensitive on purpose: historical data was
// written with this literal and a looser match would reclassify old rows.
const legacyBirdSaleMarker = "Sale of birds"

// Transaction is one ledger entry for a batch. QuantitySold and TotalWeightKg
// are only meaningful for sales and may be zero on other kinds.
type Transaction struct {
	ID            string          `bson:"_id" json:"id"`
	BatchID       string          `bson:"batch_id" json:"batchId"`
	Date          time.Time       `bson:"date" json:"date"`
	Kind          TransactionKind `bson:"kind,omitempty" json:"kind,omitempty"`
	Description   string          `bson:"description" json:"description"`
	QuantitySold  int             `bson:"quantity_sold,omitempty" json:"quantitySold,omitempty"`
	TotalWeightKg float64         `bson:"total_weight_kg,omitempty" json:"totalWeight,omitempty"`
	Amount        float64         `bson:"amount" json:"amount"`
}

// IsBirdSale reports whether the transaction should count toward birds sold.
// A populated kind field wins; otherwise the legacy description marker decides.
func (t Transaction) IsBirdSale() bool {
	if t.Kind != "" {
		return t.Kind == KindSale
	}
	return strings.Contains(t.Description, legacyBirdSaleMarker)
}

// IsWeightSale reports whether the transaction should count toward weight sold.
// Legacy rows used a broader, case-insensitive "sale" substring for this.
func (t Transaction) IsWeightSale() bool {
	if t.Kind != "" {
		return t.Kind == KindSale
	}
	return strings.Contains(strings.ToLower(t.Description), "sale")
}
