package rastab

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/qianxiR/rastab/log"
	"github.com/qianxiR/rastab/utils"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 提取4波段（红绿蓝近红外）栅格为逐像素表格，
// 坐标取像元中心经纬度，通道值按需经光度编码为0-255显示值。
func (g *RasterToolbox) ExtractBands(tif string, opt ExtractOptions) (t *PixelTable, err error) {
	t, _, _, _, err = g.extractBands(tif, opt)
	return
}

// 提取波段表格并追加water_mask列。掩膜可为单波段栅格或普通图像
// （多通道时取第一通道），按值>0二值化；掩膜尺寸必须与影像一致。
// 表格各行坐标经掩膜自身的地理变换（无地理变换时用影像的）逆映射到
// 掩膜像元，越界像素掩膜值取0而非报错。
func (g *RasterToolbox) ExtractBandsWithMask(tif, mask string, opt ExtractOptions) (t *PixelTable, err error) {
	t, width, height, gt, err := g.extractBands(tif, opt)
	if err != nil {
		return
	}
	switch strings.ToLower(filepath.Ext(mask)) {
	case FILE_EXT_TIF, FILE_EXT_TIFF, FILE_EXT_PNG, FILE_EXT_JPG, FILE_EXT_JPEG:
	default:
		log.Error(g.logTag+"mask file ext not supported", zap.String("mask", mask))
		err = ErrMaskFormat
		return
	}
	mds, err := gdal.Open(mask, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open mask failed", zap.String("mask", mask), zap.Error(err))
		err = ErrInvalidMask
		return
	}
	defer mds.Close()
	mBands := mds.Bands()
	if len(mBands) == 0 {
		err = ErrInvalidMask
		return
	}
	// 多通道图像取第一通道
	band := mBands[0]
	bs := band.Structure()
	mw, mh := bs.SizeX, bs.SizeY
	if mw != width || mh != height {
		log.Error(g.logTag+"mask size differs from raster",
			zap.Int("maskW", mw), zap.Int("maskH", mh), zap.Int("width", width), zap.Int("height", height))
		err = ErrMaskSizeMismatch
		return
	}
	raw := make([]float64, mw*mh)
	if err = band.Read(0, 0, raw, mw, mh); err != nil {
		log.Error(g.logTag+"read mask band failed", zap.Error(err))
		err = ErrTifReadFailed
		return
	}
	bin := binarizeMask(raw)
	mgt, e := mds.GeoTransform()
	if e != nil {
		// 普通图像无地理变换，沿用影像自身的
		mgt = gt
	}
	n := t.Len()
	t.WaterMask = make([]uint8, n)
	water := 0
	for i := 0; i < n; i++ {
		t.WaterMask[i] = maskValueAt(bin, mw, mh, mgt, t.Lon[i], t.Lat[i])
		water += int(t.WaterMask[i])
	}
	t.addColumn(CSV_COL_WATER_MASK)
	log.Info(g.logTag+"mask column appended", zap.String("mask", mask),
		zap.Int("waterPixels", water), zap.Int("rows", n))
	return
}

func (g *RasterToolbox) extractBands(tif string, opt ExtractOptions) (t *PixelTable, width, height int, gt [6]float64, err error) {
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tifBands := sds.Bands()
	if bc := len(tifBands); bc != EXPECTED_BAND_COUNT {
		log.Error(g.logTag+"tif must have exactly 4 bands", zap.Int("bands", bc))
		err = ErrWrongBandCount
		return
	}
	if gt, err = sds.GeoTransform(); err != nil {
		log.Error(g.logTag+"tif has no geo transform", zap.Error(err))
		err = ErrInvalidTif
		return
	}
	st := tifBands[0].Structure()
	width, height = st.SizeX, st.SizeY
	log.Info(g.logTag+"start extract tif", zap.String("tif", tif),
		zap.Int("width", width), zap.Int("height", height),
		zap.String("bandOrder", strings.Join(DEFAULT_BAND_ORDER[:], ",")))
	raw := make([][]float64, EXPECTED_BAND_COUNT)
	for i, band := range tifBands {
		raw[i] = make([]float64, width*height)
		if err = band.Read(0, 0, raw[i], width, height); err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifReadFailed
			return
		}
	}
	if opt.SaveClippedTif {
		if err = g.saveClippedCopy(sds, tif); err != nil {
			return
		}
	}
	chans := raw
	if opt.ConvertRGB {
		chans = make([][]float64, EXPECTED_BAND_COUNT)
		enc := make([][]uint8, EXPECTED_BAND_COUNT)
		for i := range raw {
			enc[i] = ReflectanceToDisplay(raw[i], opt.Codec)
			if opt.Stretch255 {
				enc[i] = StretchToFullRange(enc[i])
			}
			chans[i] = make([]float64, len(enc[i]))
			for p, v := range enc[i] {
				chans[i][p] = float64(v)
			}
		}
		if opt.SaveClippedTif {
			base := strings.TrimSuffix(tif, filepath.Ext(tif))
			out := base + RGB_CONVERTED_SUFFIX
			descs := []string{BAND_DESC_RED_RGB, BAND_DESC_GREEN_RGB, BAND_DESC_BLUE_RGB, BAND_DESC_NIR_RGB}
			if err = g.writeByteTiff(out, enc, width, height, &gt, sds.Projection(), descs); err != nil {
				return
			}
			log.Info(g.logTag+"encoded raster saved", zap.String("out", out))
		}
	}
	total := width * height
	t = NewPixelTable(total)
	done := 0
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			p := i*width + j
			if !math.IsNaN(chans[0][p]) && !math.IsNaN(chans[1][p]) &&
				!math.IsNaN(chans[2][p]) && !math.IsNaN(chans[3][p]) {
				lon, lat := pixelToGeo(gt, i, j)
				t.Lon = append(t.Lon, lon)
				t.Lat = append(t.Lat, lat)
				t.Red = append(t.Red, chans[0][p])
				t.Green = append(t.Green, chans[1][p])
				t.Blue = append(t.Blue, chans[2][p])
				t.Nir = append(t.Nir, chans[3][p])
			}
			done++
			if opt.Progress != nil && (done%PROGRESS_INTERVAL == 0 || done == total) {
				opt.Progress(done, total)
			}
		}
	}
	log.Info(g.logTag+"tif extracted", zap.Int("validPixels", t.Len()), zap.Int("totalPixels", total))
	return
}

// 保存保持原始反射率值的影像副本（lzw无损压缩）
func (g *RasterToolbox) saveClippedCopy(sds *gdal.Dataset, tif string) (err error) {
	out := strings.TrimSuffix(tif, filepath.Ext(tif)) + CLIPPED_SUFFIX
	ods, err := sds.Translate(out, []string{"-co", COMPRESS_OPTION})
	if err != nil {
		log.Error(g.logTag+"failed to save clipped copy", zap.String("out", out), zap.Error(err))
		err = ErrTifWriteFailed
		return
	}
	ods.Close()
	log.Info(g.logTag+"clipped copy saved", zap.String("out", out),
		zap.String("name", utils.GetFilenameWithoutExt(out)))
	return
}

// 掩膜按值>0二值化为水体标记
func binarizeMask(raw []float64) []uint8 {
	bin := make([]uint8, len(raw))
	for i, v := range raw {
		if v > 0 {
			bin[i] = 1
		}
	}
	return bin
}

// 经纬度逆映射到掩膜像元并取值，越界返回0（非水体）
func maskValueAt(bin []uint8, w, h int, gt [6]float64, lon, lat float64) uint8 {
	row, col := geoToPixel(gt, lon, lat)
	if row < 0 || row >= h || col < 0 || col >= w {
		return 0
	}
	return bin[row*w+col]
}
