// Package reports declares every report variant as a report.Config and wires
// them onto the HTTP surface through one generic controller.
package reports

import (
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"
)

var adminOnly = []string{"admin"}

// SalesReports lists sales invoices with the warehouse taken from the linked
// delivery note.
var SalesReports = &report.Config{
	Name:       "salesReports",
	Collection: "salesInvoices",
	DateField:  "dateInvoice",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "item", Target: report.FieldRef{Field: "item"}},
		{Key: "warehouse", Target: report.FieldRef{Field: "warehouse"}},
	},
	Searches: []report.SearchDef{
		{Key: "item", Target: report.FieldRef{Field: "item"}},
	},
	Relations: []report.Relation{
		{Name: "deliveryNote", Collection: "deliveryNotes", ForeignKey: "deliveryNotesID", Fields: []string{"warehouse"}},
	},
	Fields: []string{
		"productCode", "description", "principle", "item",
		"totalInvoiced", "totalBeforeDiscount", "totalDiscount",
		"totalAfterDiscount", "totalTax", "totalAfterTax",
	},
}

// SalesReportPerCustomers projects invoice fields only; the customer and
// salesman documents are linked but contribute nothing beyond what the
// invoice itself carries. The "item" filter/search key historically targets
// the salesman field.
var SalesReportPerCustomers = &report.Config{
	Name:       "salesReportPerCustomers",
	Collection: "salesInvoices",
	DateField:  "invoiceDate",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "item", Target: report.FieldRef{Field: "salesman"}},
	},
	Searches: []report.SearchDef{
		{Key: "item", Target: report.FieldRef{Field: "salesman"}},
	},
	Fields: []string{
		"invoice", "invoiceDate", "name", "soldTo", "salesman",
		"kdSalesman", "noFakturPajak", "dpp", "ppn", "total",
	},
}

// PurchaseReports nests the linked purchase receive under its relation name.
var PurchaseReports = &report.Config{
	Name:       "purchaseReports",
	Collection: "purchaseInvoices",
	DateField:  "dateInvoice",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "supplier", Target: report.FieldRef{Field: "supplier"}},
	},
	Searches: []report.SearchDef{
		{Key: "supplier", Target: report.FieldRef{Field: "supplier"}},
	},
	Relations: []report.Relation{
		{Name: "purchaseReceive", Collection: "purchaseReceives", ForeignKey: "purchaseReceive_id", Fields: []string{"noSuratJalan"}, Nested: true},
	},
	Fields: []string{
		"noBukti", "dateInvoice", "purchaseInvoice", "supplier",
		"noFaktur", "noFakturPajak", "dpp", "ppn", "total",
	},
}

// PurchaseReportDetails joins both the purchase order (vendor fields) and the
// purchase receive (warehouse) into a flat row.
var PurchaseReportDetails = &report.Config{
	Name:       "purchaseReportDetails",
	Collection: "purchaseInvoices",
	DateField:  "dateInvoice",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "supplier", Target: report.FieldRef{Field: "supplier"}},
		{Key: "item", Target: report.FieldRef{Field: "item"}},
		{Key: "warehouse", Target: report.FieldRef{Field: "warehouse"}},
	},
	Searches: []report.SearchDef{
		{Key: "supplier", Target: report.FieldRef{Field: "supplier"}},
	},
	Relations: []report.Relation{
		{Name: "purchaseOrder", Collection: "purchaseOrders", ForeignKey: "purchaseOrderID", Fields: []string{"purchaseOrderNumber", "vendorName", "vendorNumber"}},
		{Name: "purchaseReceive", Collection: "purchaseReceives", ForeignKey: "purchaseReceiveID", Fields: []string{"warehouse"}},
	},
	Fields: []string{
		"noInvoice", "createDate", "item", "itemDescription", "qtyVoucher",
		"materialPrice", "materialPriceConversion", "discount",
		"afterDiscount", "ppn", "total",
	},
}

// InventoryReports is the only variant with no relations: one collection,
// filtered by its own creation date and item.
var InventoryReports = &report.Config{
	Name:       "inventoryReports",
	Collection: "inventoryReports",
	DateField:  "createdAt",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "item", Target: report.FieldRef{Field: "item"}},
	},
	Searches: []report.SearchDef{
		{Key: "item", Target: report.FieldRef{Field: "item"}},
	},
	Fields: []string{
		"item", "description", "quantityInStock", "unitCost",
		"startBalanceCost", "receiptsAmount", "issuesAmount", "issuesQuantity",
	},
}

// DebtsAgingReports joins customer and inventory data onto unpaid invoices
// and computes the outstanding remainder. The "item" filter key is an alias
// for the customer field, same historical quirk as salesReportPerCustomers.
var DebtsAgingReports = &report.Config{
	Name:       "debtsAgingReports",
	Collection: "salesInvoices",
	DateField:  "invoiceDate",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "customer", Target: report.FieldRef{Field: "customer"}},
		{Key: "item", Target: report.FieldRef{Field: "customer"}},
	},
	Searches: []report.SearchDef{
		{Key: "customer", Target: report.FieldRef{Field: "customer"}},
	},
	Relations: []report.Relation{
		{Name: "customer", Collection: "customers", ForeignKey: "customerID", Fields: []string{"customer", "customerWarehouse"}},
		{Name: "inventory", Collection: "inventories", ForeignKey: "inventoryID", Fields: []string{"productCode", "name"}},
	},
	Fields: []string{
		"invoiceNumber", "invoiceDate", "invoiceAmount", "payment",
	},
	Computed: []report.ComputedField{
		report.MustComputed("remaining", "invoiceAmount - payment"),
	},
}

// DebtsAgingReportPerCustomers is the per-customer cut of the aging report;
// remaining here nets payments against debit memos. The row's name comes from
// the linked customer record, not the invoice, and "item" aliases the
// customer filter key.
var DebtsAgingReportPerCustomers = &report.Config{
	Name:       "debtsAgingReportPerCustomers",
	Collection: "salesInvoices",
	DateField:  "invoiceDate",
	Roles:      adminOnly,
	Filters: []report.FilterDef{
		{Key: "customer", Target: report.FieldRef{Field: "customer"}},
		{Key: "item", Target: report.FieldRef{Field: "customer"}},
	},
	Searches: []report.SearchDef{
		{Key: "customer", Target: report.FieldRef{Field: "customer"}},
	},
	Relations: []report.Relation{
		{Name: "customer", Collection: "customers", ForeignKey: "customerID", Fields: []string{"customerID", "name"}},
	},
	Fields: []string{
		"invoice", "invoiceDate", "description", "cn",
		"dpp", "ppn", "totalInvoice", "payment", "debitMemo",
	},
	Computed: []report.ComputedField{
		report.MustComputed("remaining", "payment - debitMemo"),
	},
}

// All returns every report variant in registration order.
func All() []*report.Config {
	return []*report.Config{
		SalesReports,
		SalesReportPerCustomers,
		PurchaseReports,
		PurchaseReportDetails,
		InventoryReports,
		DebtsAgingReports,
		DebtsAgingReportPerCustomers,
	}
}
