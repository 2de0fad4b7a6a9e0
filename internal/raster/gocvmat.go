package raster

import "gocv.io/x/gocv"

// maskToMat copies a Mask into a single-channel gocv.Mat with 0/255 cells,
// the form every gocv morphology and contour primitive expects.
func maskToMat(m Mask) gocv.Mat {
	data := make([]byte, len(m.Pix))
	for i, v := range m.Pix {
		if v != 0 {
			data[i] = 255
		}
	}
	mat, err := gocv.NewMatFromBytes(m.H, m.W, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return gocv.NewMatWithSize(m.H, m.W, gocv.MatTypeCV8UC1)
	}
	return mat
}

// matToMask copies a single-channel 0/255 gocv.Mat back into a Mask. The
// caller retains ownership of mat and must Close it.
func matToMask(mat gocv.Mat) Mask {
	out := NewMask(mat.Cols(), mat.Rows())
	data, err := mat.DataPtrUint8()
	if err != nil {
		return out
	}
	for i, v := range data {
		if v != 0 {
			out.Pix[i] = 1
		}
	}
	return out
}
