package adboard

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// scaleTranslate builds the affine matrix Translate(tx, ty) * Scale(s).
func scaleTranslate(s, tx, ty float64) [6]float64 {
	return [6]float64{s, 0, 0, s, tx, ty}
}

// multiplyAffine composes outer after inner, so a point goes through inner
// first. Layout is [a, b, c, d, tx, ty] with x' = a*x + c*y + tx.
func multiplyAffine(outer, inner [6]float64) [6]float64 {
	a, b, c, d := outer[0], outer[1], outer[2], outer[3]
	return [6]float64{
		a*inner[0] + c*inner[1],
		b*inner[0] + d*inner[1],
		a*inner[2] + c*inner[3],
		b*inner[2] + d*inner[3],
		a*inner[4] + c*inner[5] + outer[4],
		b*inner[4] + d*inner[5] + outer[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
