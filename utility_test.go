package rastab

import (
	"strings"
	"testing"
)

func TestTableSpan(t *testing.T) {
	span := TableSpan(newRebuildTable())
	want := [4]float64{100.00, 100.02, 49.99, 50.00}
	if span != want {
		t.Fatalf("span = %v, want %v", span, want)
	}
	wkt := SpanToWkt(span)
	if !strings.HasPrefix(wkt, "POLYGON((") {
		t.Errorf("wkt = %s", wkt)
	}
	if TableSpan(NewPixelTable(0)) != ([4]float64{}) {
		t.Error("empty table span should be zero")
	}
}
