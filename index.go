package rastab

import (
	"fmt"
	"strings"

	"github.com/qianxiR/rastab/log"

	"go.uber.org/zap"
)

// 指数引擎要求的输入列，water_mask须由提取阶段提供，此处不计算
var indexRequiredCols = []string{
	CSV_COL_LONGITUDE, CSV_COL_LATITUDE,
	CSV_COL_RED, CSV_COL_GREEN, CSV_COL_BLUE, CSV_COL_NIR,
	CSV_COL_WATER_MASK,
}

func normalizedDiff(a, b float64) float64 {
	d := (a - b) / (a + b + INDEX_EPSILON)
	if d < INDEX_MIN {
		d = INDEX_MIN
	} else if d > INDEX_MAX {
		d = INDEX_MAX
	}
	return d
}

// 归一化指数[-1,1]线性拉伸到0-255
func stretchIndexTo255(v float64) uint8 {
	s := (v - INDEX_MIN) / (INDEX_MAX - INDEX_MIN) * DISPLAY_MAX
	if s < 0 {
		s = 0
	} else if s > DISPLAY_MAX {
		s = DISPLAY_MAX
	}
	return uint8(s)
}

func rgbToGray(r, g, b float64) uint8 {
	gray := GRAY_WEIGHT_RED*r + GRAY_WEIGHT_GREEN*g + GRAY_WEIGHT_BLUE*b
	if gray < 0 {
		gray = 0
	} else if gray > DISPLAY_MAX {
		gray = DISPLAY_MAX
	}
	return uint8(gray)
}

// 在像素表上追加灰度、NDWI/NDVI及其0-255拉伸列，并整理为规范列序
// （water_mask移到最后）。任何输入列缺失都在计算前报错。
//
// NDWI=(G-NIR)/(G+NIR)（McFeeters 1996），正值偏水体；
// NDVI=(NIR-R)/(NIR+R)（Rouse 1974），正值偏植被；
// 分母加极小值防除零，结果裁剪到[-1,1]。
func AppendIndices(t *PixelTable) (err error) {
	if missing := t.missingColumns(indexRequiredCols); len(missing) > 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, strings.Join(missing, ","))
		log.Error("index input columns missing", zap.Strings("missing", missing))
		return
	}
	n := t.Len()
	t.Gray = make([]uint8, n)
	t.Ndwi = make([]float64, n)
	t.Ndvi = make([]float64, n)
	t.Ndwi255 = make([]uint8, n)
	t.Ndvi255 = make([]uint8, n)
	for i := 0; i < n; i++ {
		t.Gray[i] = rgbToGray(t.Red[i], t.Green[i], t.Blue[i])
		t.Ndwi[i] = normalizedDiff(t.Green[i], t.Nir[i])
		t.Ndvi[i] = normalizedDiff(t.Nir[i], t.Red[i])
		t.Ndwi255[i] = stretchIndexTo255(t.Ndwi[i])
		t.Ndvi255[i] = stretchIndexTo255(t.Ndvi[i])
	}
	t.addColumn(CSV_COL_GRAY)
	t.addColumn(CSV_COL_NDWI)
	t.addColumn(CSV_COL_NDVI)
	t.addColumn(CSV_COL_NDWI_255)
	t.addColumn(CSV_COL_NDVI_255)
	t.setColumnOrder(CANONICAL_COLUMNS)
	log.Info("indices appended", zap.Int("rows", n), zap.Strings("columns", t.columns))
	return
}
