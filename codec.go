package rastab

import "math"

// 光度编解码：反射率(0-10000)与显示值(0-255)之间的无状态逐元素变换。
// 所有越界输入一律饱和截断，不报错。

func encodeReflectance(raw float64, opt CodecOptions) uint8 {
	// 0-10000 → 0-1反射率
	refl := raw / REFLECTANCE_SCALE
	// 裁剪到有效反射率窗口（窗口外饱和）
	if refl < opt.ClipMin {
		refl = opt.ClipMin
	} else if refl > opt.ClipMax {
		refl = opt.ClipMax
	}
	// Min-Max归一化到0-1后做Gamma校正（1/γ次方，压亮部提暗部）
	norm := (refl - opt.ClipMin) / (opt.ClipMax - opt.ClipMin)
	return uint8(math.Pow(norm, 1/opt.Gamma) * DISPLAY_MAX)
}

func decodeDisplay(v uint8, opt CodecOptions) uint16 {
	// 逆Gamma后按裁剪窗口反归一化
	norm := float64(v) / DISPLAY_MAX
	refl := math.Pow(norm, opt.Gamma)*(opt.ClipMax-opt.ClipMin) + opt.ClipMin
	raw := refl * REFLECTANCE_SCALE
	if raw < 0 {
		raw = 0
	} else if raw > REFLECTANCE_MAX {
		raw = REFLECTANCE_MAX
	}
	return uint16(raw)
}

// 反射率波段编码为0-255显示值
func ReflectanceToDisplay(band []float64, opt CodecOptions) []uint8 {
	out := make([]uint8, len(band))
	for i, v := range band {
		out[i] = encodeReflectance(v, opt)
	}
	return out
}

// 将波段实际取值范围线性拉伸到完整0-255。
// 该步骤不可逆：拉伸时的实际min/max不随数据保存，解码端无从恢复。
// 波段取值恒定时原样返回。
func StretchToFullRange(vals []uint8) []uint8 {
	if len(vals) == 0 {
		return vals
	}
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max <= min {
		return vals
	}
	span := float64(max - min)
	out := make([]uint8, len(vals))
	for i, v := range vals {
		out[i] = uint8(float64(v-min) / span * DISPLAY_MAX)
	}
	return out
}

// 显示值波段逆编码回反射率(0-10000, uint16)。
// 仅当编码端未做255拉伸时才是（量化精度内的）精确逆；做过拉伸时，
// 结果与拉伸后的显示值自洽，是对原反射率的有损近似。
func DisplayToReflectance(vals []uint8, opt CodecOptions) []uint16 {
	out := make([]uint16, len(vals))
	for i, v := range vals {
		out[i] = decodeDisplay(v, opt)
	}
	return out
}
