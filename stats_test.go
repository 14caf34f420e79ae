package rastab

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := summarize([]float64{3, 1, 2})
	if s.Min != 1 || s.Max != 3 || s.Median != 2 {
		t.Errorf("summarize = %+v", s)
	}
	if math.Abs(s.Mean-2) > 1e-12 || math.Abs(s.Stddev-1) > 1e-12 {
		t.Errorf("mean/stddev = %v/%v, want 2/1", s.Mean, s.Stddev)
	}
	if s = summarize(nil); s != (ColumnStats{}) {
		t.Errorf("empty column stats = %+v, want zero", s)
	}
}

func TestDescribe(t *testing.T) {
	tab := newIndexTable(4)
	tab.WaterMask[0] = 1
	tab.WaterMask[2] = 1
	if err := AppendIndices(tab); err != nil {
		t.Fatal(err)
	}
	tab.Ndvi = []float64{-0.5, 0.1, 0.5, 0.9}
	s := Describe(tab)
	if s.Rows != 4 {
		t.Fatalf("rows = %d, want 4", s.Rows)
	}
	// 四行全由同一组通道值算得，NDWI应恒正
	if s.NdwiPositive != 4 {
		t.Errorf("ndwi positive = %d, want 4", s.NdwiPositive)
	}
	if s.NdviClasses != [5]int{1, 1, 0, 1, 1} {
		t.Errorf("ndvi classes = %v, want [1 1 0 1 1]", s.NdviClasses)
	}
	if s.WaterPixels != 2 {
		t.Errorf("water pixels = %d, want 2", s.WaterPixels)
	}
}

func TestDescribeSkipsMissingColumns(t *testing.T) {
	tab := NewPixelTable(2)
	tab.Lon = append(tab.Lon, 100, 101)
	tab.Lat = append(tab.Lat, 30, 31)
	s := Describe(tab)
	if s.Rows != 2 || s.NdwiPositive != 0 || s.WaterPixels != 0 {
		t.Errorf("stats on bare table = %+v", s)
	}
}
