package rastab

import (
	"github.com/qianxiR/rastab/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 栅格落盘：8位/16位GeoTIFF写出，嵌入地理变换、投影与波段描述，
// lzw无损压缩。覆盖写，出错时可能留下不完整文件。

func (g *RasterToolbox) writeByteTiff(out string, bands [][]uint8, width, height int, gt *[6]float64, proj string, descs []string) (err error) {
	ds, err := gdal.Create(gdal.GTiff, out, len(bands), gdal.Byte, width, height,
		gdal.CreationOption(COMPRESS_OPTION))
	if err != nil {
		log.Error(g.logTag+"create tif failed", zap.String("out", out), zap.Error(err))
		err = ErrGdalDriverCreate
		return
	}
	defer ds.Close()
	if err = g.applyGeoRef(ds, gt, proj); err != nil {
		return
	}
	for i, band := range ds.Bands() {
		if err = band.Write(0, 0, bands[i], width, height); err != nil {
			log.Error(g.logTag+"write tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
		g.describeBand(band, i, descs)
	}
	return
}

func (g *RasterToolbox) writeUint16Tiff(out string, bands [][]uint16, width, height int, gt *[6]float64, proj string, descs []string) (err error) {
	ds, err := gdal.Create(gdal.GTiff, out, len(bands), gdal.UInt16, width, height,
		gdal.CreationOption(COMPRESS_OPTION))
	if err != nil {
		log.Error(g.logTag+"create tif failed", zap.String("out", out), zap.Error(err))
		err = ErrGdalDriverCreate
		return
	}
	defer ds.Close()
	if err = g.applyGeoRef(ds, gt, proj); err != nil {
		return
	}
	for i, band := range ds.Bands() {
		if err = band.Write(0, 0, bands[i], width, height); err != nil {
			log.Error(g.logTag+"write tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
		g.describeBand(band, i, descs)
	}
	return
}

func (g *RasterToolbox) applyGeoRef(ds *gdal.Dataset, gt *[6]float64, proj string) (err error) {
	if gt != nil {
		if err = ds.SetGeoTransform(*gt); err != nil {
			log.Error(g.logTag+"set geo transform failed", zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
	}
	if proj != "" {
		if err = ds.SetProjection(proj); err != nil {
			log.Error(g.logTag+"set projection failed", zap.Error(err))
			err = ErrTifWriteFailed
		}
	}
	return
}

// 波段描述写失败不阻断输出
func (g *RasterToolbox) describeBand(band gdal.Band, i int, descs []string) {
	if i >= len(descs) {
		return
	}
	if err := band.SetDescription(descs[i]); err != nil {
		log.Warn(g.logTag+"set band description failed", zap.Int("band", i), zap.Error(err))
	}
}
