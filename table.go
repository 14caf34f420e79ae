package rastab

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/qianxiR/rastab/log"
	"github.com/qianxiR/rastab/utils"

	"go.uber.org/zap"
)

var (
	tableFloatCols = map[string]func(t *PixelTable) *[]float64{
		CSV_COL_LONGITUDE: func(t *PixelTable) *[]float64 { return &t.Lon },
		CSV_COL_LATITUDE:  func(t *PixelTable) *[]float64 { return &t.Lat },
		CSV_COL_RED:       func(t *PixelTable) *[]float64 { return &t.Red },
		CSV_COL_GREEN:     func(t *PixelTable) *[]float64 { return &t.Green },
		CSV_COL_BLUE:      func(t *PixelTable) *[]float64 { return &t.Blue },
		CSV_COL_NIR:       func(t *PixelTable) *[]float64 { return &t.Nir },
		CSV_COL_NDWI:      func(t *PixelTable) *[]float64 { return &t.Ndwi },
		CSV_COL_NDVI:      func(t *PixelTable) *[]float64 { return &t.Ndvi },
	}
	tableByteCols = map[string]func(t *PixelTable) *[]uint8{
		CSV_COL_GRAY:       func(t *PixelTable) *[]uint8 { return &t.Gray },
		CSV_COL_NDWI_255:   func(t *PixelTable) *[]uint8 { return &t.Ndwi255 },
		CSV_COL_NDVI_255:   func(t *PixelTable) *[]uint8 { return &t.Ndvi255 },
		CSV_COL_WATER_MASK: func(t *PixelTable) *[]uint8 { return &t.WaterMask },
	}

	// 坐标与指数列固定6位小数输出
	fixedDecimalCols = map[string]bool{
		CSV_COL_LONGITUDE: true,
		CSV_COL_LATITUDE:  true,
		CSV_COL_NDWI:      true,
		CSV_COL_NDVI:      true,
	}
)

// 创建仅含坐标与通道列的像素表
func NewPixelTable(capacity int) *PixelTable {
	t := &PixelTable{
		Lon:   make([]float64, 0, capacity),
		Lat:   make([]float64, 0, capacity),
		Red:   make([]float64, 0, capacity),
		Green: make([]float64, 0, capacity),
		Blue:  make([]float64, 0, capacity),
		Nir:   make([]float64, 0, capacity),
		columns: []string{
			CSV_COL_LONGITUDE, CSV_COL_LATITUDE,
			CSV_COL_RED, CSV_COL_GREEN, CSV_COL_BLUE, CSV_COL_NIR,
		},
	}
	return t
}

func (t *PixelTable) Len() int {
	return len(t.Lon)
}

// 当前列序（即CSV输出列序）
func (t *PixelTable) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

func (t *PixelTable) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

func (t *PixelTable) missingColumns(required []string) (missing []string) {
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return
}

func (t *PixelTable) addColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

func (t *PixelTable) setColumnOrder(order []string) {
	cols := make([]string, 0, len(order))
	for _, c := range order {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	t.columns = cols
}

func (t *PixelTable) cellString(col string, row int) string {
	if ref, ok := tableByteCols[col]; ok {
		return strconv.Itoa(int((*ref(t))[row]))
	}
	v := (*tableFloatCols[col](t))[row]
	if fixedDecimalCols[col] {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// 读取CSV像素表。非UTF-8编码（中文Excel导出常见GBK）自动转码；
// 未知列跳过，列缺失由下游各操作按需校验。
func LoadTable(path string) (t *PixelTable, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if !utf8.Valid(data) {
		if data, err = utils.GbkToUtf8(data); err != nil {
			log.Error("csv gbk decode failed", zap.String("path", path), zap.Error(err))
			return
		}
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		log.Error("csv parse failed", zap.String("path", path), zap.Error(err))
		return
	}
	if len(records) == 0 {
		err = ErrEmptyTable
		return
	}
	header := records[0]
	rows := records[1:]
	t = &PixelTable{}
	type colSink struct {
		idx    int
		name   string
		isByte bool
	}
	var sinks []colSink
	for i, name := range header {
		name = utils.PurifyForUtf8(name)
		if _, ok := tableFloatCols[name]; ok {
			sinks = append(sinks, colSink{i, name, false})
		} else if _, ok = tableByteCols[name]; ok {
			sinks = append(sinks, colSink{i, name, true})
		} else {
			log.Warn("unknown csv column skipped", zap.String("column", name))
			continue
		}
		t.columns = append(t.columns, name)
	}
	for _, s := range sinks {
		if s.isByte {
			*tableByteCols[s.name](t) = make([]uint8, 0, len(rows))
		} else {
			*tableFloatCols[s.name](t) = make([]float64, 0, len(rows))
		}
	}
	var v float64
	for _, rec := range rows {
		for _, s := range sinks {
			if v, err = strconv.ParseFloat(rec[s.idx], 64); err != nil {
				log.Error("csv cell parse failed", zap.String("column", s.name), zap.Error(err))
				return
			}
			if s.isByte {
				ref := tableByteCols[s.name](t)
				*ref = append(*ref, uint8(v))
			} else {
				ref := tableFloatCols[s.name](t)
				*ref = append(*ref, v)
			}
		}
	}
	log.Info("csv table loaded", zap.String("path", path),
		zap.Int("rows", t.Len()), zap.Strings("columns", t.columns))
	return
}

// 按当前列序保存CSV（覆盖写，无原子替换语义）
func (t *PixelTable) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err = w.Write(t.columns); err != nil {
		return
	}
	n := t.Len()
	rec := make([]string, len(t.columns))
	for i := 0; i < n; i++ {
		for j, col := range t.columns {
			rec[j] = t.cellString(col, i)
		}
		if err = w.Write(rec); err != nil {
			return
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		log.Error("csv write failed", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("csv table saved", zap.String("path", path), zap.Int("rows", n))
	return
}
