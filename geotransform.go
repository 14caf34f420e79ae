package rastab

import "math"

// 六系数仿射地理变换的正逆映射。
// 正向取像元中心坐标，逆向对连续像元坐标向下取整，两者在像元中心精度上自洽。

func pixelToGeo(gt [6]float64, row, col int) (lon, lat float64) {
	fc := float64(col) + 0.5
	fr := float64(row) + 0.5
	lon = gt[0] + fc*gt[1] + fr*gt[2]
	lat = gt[3] + fc*gt[4] + fr*gt[5]
	return
}

func geoToPixel(gt [6]float64, lon, lat float64) (row, col int) {
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return -1, -1
	}
	dx := lon - gt[0]
	dy := lat - gt[3]
	col = int(math.Floor((dx*gt[5] - dy*gt[2]) / det))
	row = int(math.Floor((dy*gt[1] - dx*gt[4]) / det))
	return
}
