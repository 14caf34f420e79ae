package rastab

// 像素表：逐像素一行的列式表格，列集合与列序即CSV模式
type PixelTable struct {
	Lon, Lat []float64

	// 通道值；编码后为0-255显示值，未编码时为原始反射率
	Red, Green, Blue, Nir []float64

	Gray       []uint8
	Ndwi, Ndvi []float64
	Ndwi255    []uint8
	Ndvi255    []uint8
	WaterMask  []uint8

	columns []string
}

// 光度编解码参数（不可变，按值传入各阶段）
type CodecOptions struct {
	ClipMin float64 // 反射率下限，窗口外饱和截断
	ClipMax float64 // 反射率上限
	Gamma   float64 // 显示Gamma校正指数
}

func DefaultCodecOptions() CodecOptions {
	return CodecOptions{
		ClipMin: DEFAULT_CLIP_MIN,
		ClipMax: DEFAULT_CLIP_MAX,
		Gamma:   DEFAULT_GAMMA,
	}
}

// 波段提取参数
type ExtractOptions struct {
	Codec          CodecOptions
	ConvertRGB     bool // 反射率编码为0-255显示值
	Stretch255     bool // 编码后再做不可逆的实际范围→0-255拉伸
	SaveClippedTif bool // 保存原始影像与编码影像副本

	// 可选的进度观察者，与计算本身分离
	Progress func(done, total int)
}

func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Codec:          DefaultCodecOptions(),
		ConvertRGB:     true,
		Stretch255:     true,
		SaveClippedTif: true,
	}
}

// 栅格重建参数
type RebuildOptions struct {
	Codec              CodecOptions
	Bands              string // rgb 或 rgbn
	CRS                string // 如 EPSG:4326
	RestoreReflectance bool   // 逆编码回反射率（uint16输出），否则uint8显示值输出

	Progress func(done, total int)
}

func DefaultRebuildOptions() RebuildOptions {
	return RebuildOptions{
		Codec:              DefaultCodecOptions(),
		Bands:              BANDS_RGBN,
		CRS:                DEFAULT_CRS,
		RestoreReflectance: true,
	}
}
