package rastab

import (
	"sort"

	"github.com/qianxiR/rastab/log"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// 单列汇总统计
type ColumnStats struct {
	Min, Max, Mean, Median, Stddev float64
}

func summarize(vals []float64) (s ColumnStats) {
	if len(vals) == 0 {
		return
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(vals, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Stddev = stat.StdDev(vals, nil)
	return
}

// 指数列统计汇总，只读观察，不改动表格
type TableStats struct {
	Rows         int
	Ndwi, Ndvi   ColumnStats
	NdwiPositive int    // 正值偏水体
	NdviClasses  [5]int // 水体/裸土、稀疏、低覆盖、中等、茂密
	WaterPixels  int
	Correlation  float64 // NDWI与NDVI相关系数
}

// 计算并打印指数统计（对应指数计算后的质检环节）。
// 缺失的列跳过对应统计项。
func Describe(t *PixelTable) (s TableStats) {
	s.Rows = t.Len()
	if t.HasColumn(CSV_COL_NDWI) {
		s.Ndwi = summarize(t.Ndwi)
		for _, v := range t.Ndwi {
			if v > 0 {
				s.NdwiPositive++
			}
		}
		log.Info("ndwi stats", zap.Float64("min", s.Ndwi.Min), zap.Float64("max", s.Ndwi.Max),
			zap.Float64("mean", s.Ndwi.Mean), zap.Float64("median", s.Ndwi.Median),
			zap.Float64("stddev", s.Ndwi.Stddev), zap.Int("positive", s.NdwiPositive))
	}
	if t.HasColumn(CSV_COL_NDVI) {
		s.Ndvi = summarize(t.Ndvi)
		for _, v := range t.Ndvi {
			switch {
			case v < 0:
				s.NdviClasses[0]++
			case v < 0.2:
				s.NdviClasses[1]++
			case v < 0.4:
				s.NdviClasses[2]++
			case v < 0.6:
				s.NdviClasses[3]++
			default:
				s.NdviClasses[4]++
			}
		}
		log.Info("ndvi stats", zap.Float64("min", s.Ndvi.Min), zap.Float64("max", s.Ndvi.Max),
			zap.Float64("mean", s.Ndvi.Mean), zap.Float64("median", s.Ndvi.Median),
			zap.Float64("stddev", s.Ndvi.Stddev), zap.Ints("classes", s.NdviClasses[:]))
	}
	if t.HasColumn(CSV_COL_NDWI) && t.HasColumn(CSV_COL_NDVI) && s.Rows > 1 {
		s.Correlation = stat.Correlation(t.Ndwi, t.Ndvi, nil)
		log.Info("index correlation", zap.Float64("ndwiNdvi", s.Correlation))
	}
	if t.HasColumn(CSV_COL_WATER_MASK) {
		for _, v := range t.WaterMask {
			s.WaterPixels += int(v)
		}
		log.Info("water mask stats", zap.Int("waterPixels", s.WaterPixels), zap.Int("rows", s.Rows))
	}
	return
}
