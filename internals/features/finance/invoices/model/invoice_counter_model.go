package model

// InvoiceCounterModel is the per-year sequence for invoice numbers. The old
// "max existing + 1" scan was race-prone; an atomic upsert on this table is
// not.
type InvoiceCounterModel struct {
	InvoiceCounterYear    int `gorm:"column:invoice_counter_year;primaryKey;autoIncrement:false" json:"invoice_counter_year"`
	InvoiceCounterLastSeq int `gorm:"column:invoice_counter_last_seq;not null" json:"invoice_counter_last_seq"`
}

func (InvoiceCounterModel) TableName() string {
	return "invoice_counters"
}
