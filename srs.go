package rastab

import (
	"strconv"
	"strings"
	"sync"

	"github.com/qianxiR/rastab/log"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 栅格与像素表互转工具箱，tmpDir为可选的临时目录路径（未提供的话为当前目录）
type RasterToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

var registerDrivers sync.Once

func NewRasterToolbox(tmpDir ...string) *RasterToolbox {
	registerDrivers.Do(godal.RegisterAll)
	g := &RasterToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "RasterToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *RasterToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 数据轴次序固定为传统GIS的(经度,纬度)，避免输出时次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

// 解析坐标系标识（"EPSG:4326"或纯srid数字）
func ParseCRS(crs string) (srid int, err error) {
	s := strings.TrimSpace(crs)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if !strings.EqualFold(s[:i], "EPSG") {
			err = ErrVoidSrid
			return
		}
		s = s[i+1:]
	}
	if srid, err = strconv.Atoi(s); err != nil {
		log.Error("parse crs failed", zap.String("crs", crs), zap.Error(err))
		err = ErrVoidSrid
	}
	return
}

// 坐标系标识转投影WKT，供栅格输出嵌入
func (g *RasterToolbox) projWKT(crs string) (wkt string, err error) {
	srid, err := ParseCRS(crs)
	if err != nil {
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	if wkt, err = ref.ToWKT(); err != nil {
		log.Error(g.logTag+"srs to wkt failed", zap.Int("srid", srid), zap.Error(err))
	}
	return
}
