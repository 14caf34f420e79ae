package rastab

import "fmt"

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

// 获取像素表经纬度范围 [lon1,lon2,lat1,lat2]
func TableSpan(t *PixelTable) (span [4]float64) {
	if t.Len() == 0 {
		return
	}
	span = [4]float64{t.Lon[0], t.Lon[0], t.Lat[0], t.Lat[0]}
	for i := 1; i < t.Len(); i++ {
		if t.Lon[i] < span[0] {
			span[0] = t.Lon[i]
		} else if t.Lon[i] > span[1] {
			span[1] = t.Lon[i]
		}
		if t.Lat[i] < span[2] {
			span[2] = t.Lat[i]
		} else if t.Lat[i] > span[3] {
			span[3] = t.Lat[i]
		}
	}
	return
}
