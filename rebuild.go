package rastab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qianxiR/rastab/log"

	gdal "github.com/airbusgeo/godal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	rebuildRgbCols  = []string{CSV_COL_LONGITUDE, CSV_COL_LATITUDE, CSV_COL_RED, CSV_COL_GREEN, CSV_COL_BLUE}
	rebuildRgbnCols = append(rebuildRgbCols[:len(rebuildRgbCols):len(rebuildRgbCols)], CSV_COL_NIR)
)

// 像素表坐标点阵：唯一经度升序、唯一纬度降序构成的矩形网格
type gridLattice struct {
	width, height  int
	lonRes, latRes float64
	lonToCol       map[float64]int
	latToRow       map[float64]int
	span           [4]float64 // lon1,lon2,lat1,lat2
	gt             [6]float64
}

func buildLattice(t *PixelTable) (la *gridLattice, err error) {
	if t.Len() == 0 {
		err = ErrEmptyTable
		return
	}
	lonSet := map[float64]struct{}{}
	latSet := map[float64]struct{}{}
	for i := range t.Lon {
		lonSet[t.Lon[i]] = struct{}{}
		latSet[t.Lat[i]] = struct{}{}
	}
	lons := make([]float64, 0, len(lonSet))
	for v := range lonSet {
		lons = append(lons, v)
	}
	lats := make([]float64, 0, len(latSet))
	for v := range latSet {
		lats = append(lats, v)
	}
	sort.Float64s(lons)
	sort.Sort(sort.Reverse(sort.Float64Slice(lats)))
	la = &gridLattice{
		width:    len(lons),
		height:   len(lats),
		lonToCol: make(map[float64]int, len(lons)),
		latToRow: make(map[float64]int, len(lats)),
	}
	for i, v := range lons {
		la.lonToCol[v] = i
	}
	for i, v := range lats {
		la.latToRow[v] = i
	}
	// 轴分辨率取 (max-min)/(n-1)，单点轴退化为固定小分辨率
	la.lonRes = DEFAULT_RESOLUTION
	if la.width > 1 {
		la.lonRes = (lons[la.width-1] - lons[0]) / float64(la.width-1)
	}
	la.latRes = DEFAULT_RESOLUTION
	if la.height > 1 {
		la.latRes = (lats[0] - lats[la.height-1]) / float64(la.height-1)
	}
	la.span = [4]float64{lons[0], lons[la.width-1], lats[la.height-1], lats[0]}
	// 包围盒向四周各扩半个像元（像元中心约定），north-up地理变换
	la.gt = [6]float64{
		lons[0] - la.lonRes/2, la.lonRes, 0,
		lats[0] + la.latRes/2, 0, -la.latRes,
	}
	return
}

// 将表格各行按坐标写入稠密网格。点阵之外的坐标静默跳过，
// 无行对应的格点保持0（no data），重复坐标后写覆盖先写。
func fillGrid(t *PixelTable, la *gridLattice, chans [][]float64, progress func(done, total int)) (grids [][]uint8, filled int) {
	grids = make([][]uint8, len(chans))
	for b := range grids {
		grids[b] = make([]uint8, la.width*la.height)
	}
	n := t.Len()
	for i := 0; i < n; i++ {
		col, okC := la.lonToCol[t.Lon[i]]
		row, okR := la.latToRow[t.Lat[i]]
		if okC && okR {
			p := row*la.width + col
			for b, ch := range chans {
				grids[b][p] = uint8(int(ch[i]))
			}
			filled++
		}
		if progress != nil && ((i+1)%PROGRESS_INTERVAL == 0 || i+1 == n) {
			progress(i+1, n)
		}
	}
	return
}

// 像素表重建为GeoTIFF。恢复反射率时整幅网格先以显示值填充、
// 再逐波段批量逆编码为uint16；否则直接输出uint8显示值。
func (g *RasterToolbox) TableToRaster(t *PixelTable, out string, opt RebuildOptions) (err error) {
	var (
		chans [][]float64
		descs []string
		cols  []string
	)
	switch opt.Bands {
	case BANDS_RGB:
		cols = rebuildRgbCols
		chans = [][]float64{t.Red, t.Green, t.Blue}
		descs = []string{BAND_DESC_RED, BAND_DESC_GREEN, BAND_DESC_BLUE}
	case BANDS_RGBN:
		cols = rebuildRgbnCols
		chans = [][]float64{t.Red, t.Green, t.Blue, t.Nir}
		descs = []string{BAND_DESC_RED, BAND_DESC_GREEN, BAND_DESC_BLUE, BAND_DESC_NIR}
	default:
		err = ErrWrongBandsMode
		return
	}
	if missing := t.missingColumns(cols); len(missing) > 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, strings.Join(missing, ","))
		log.Error(g.logTag+"rebuild input columns missing", zap.Strings("missing", missing))
		return
	}
	la, err := buildLattice(t)
	if err != nil {
		return
	}
	log.Info(g.logTag+"rebuild raster from table", zap.Int("rows", t.Len()),
		zap.Int("width", la.width), zap.Int("height", la.height),
		zap.Float64("lonRes", la.lonRes), zap.Float64("latRes", la.latRes),
		zap.String("footprint", SpanToWkt(la.span)),
		zap.Bool("restoreReflectance", opt.RestoreReflectance))
	grids, filled := fillGrid(t, la, chans, opt.Progress)
	log.Info(g.logTag+"grid filled", zap.Int("filledPixels", filled),
		zap.Int("cells", la.width*la.height))
	wkt, err := g.projWKT(opt.CRS)
	if err != nil {
		return
	}
	if opt.RestoreReflectance {
		boa := make([][]uint16, len(grids))
		for b := range grids {
			boa[b] = DisplayToReflectance(grids[b], opt.Codec)
		}
		err = g.writeUint16Tiff(out, boa, la.width, la.height, &la.gt, wkt, descs)
	} else {
		err = g.writeByteTiff(out, grids, la.width, la.height, &la.gt, wkt, descs)
	}
	if err == nil {
		log.Info(g.logTag+"raster saved", zap.String("out", out), zap.Int("bands", len(grids)))
	}
	return
}

// 像素表重建为无地理参考的3波段8位PNG可视化图
func (g *RasterToolbox) TableToImage(t *PixelTable, out string) (err error) {
	if missing := t.missingColumns(rebuildRgbCols); len(missing) > 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, strings.Join(missing, ","))
		log.Error(g.logTag+"image input columns missing", zap.Strings("missing", missing))
		return
	}
	la, err := buildLattice(t)
	if err != nil {
		return
	}
	log.Info(g.logTag+"rebuild png from table", zap.Int("rows", t.Len()),
		zap.Int("width", la.width), zap.Int("height", la.height))
	grids, filled := fillGrid(t, la, [][]float64{t.Red, t.Green, t.Blue}, nil)
	log.Info(g.logTag+"grid filled", zap.Int("filledPixels", filled))
	// PNG驱动不支持直接创建，先写临时GTiff再转码
	tmp := filepath.Join(g.tmpDir, fmt.Sprintf(TMP_TIF, uuid.NewString()))
	defer os.Remove(tmp)
	if err = g.writeByteTiff(tmp, grids, la.width, la.height, nil, "", nil); err != nil {
		return
	}
	tds, err := gdal.Open(tmp, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tmp tif failed", zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer tds.Close()
	ods, err := tds.Translate(out, []string{"-of", "PNG"})
	if err != nil {
		log.Error(g.logTag+"failed to translate png", zap.String("out", out), zap.Error(err))
		err = ErrTifWriteFailed
		return
	}
	ods.Close()
	log.Info(g.logTag+"png saved", zap.String("out", out))
	return
}
