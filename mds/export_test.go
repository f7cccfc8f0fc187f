package mds

// Test-only access to unexported helpers.
var (
	SelectTop         = selectTop
	RepresentativeRow = representativeRow
	Orient            = orient
	ReportFallback    = reportFallback
)
