package reader

import "strconv"

func parseFloat(literal string) (float64, error) {
	return strconv.ParseFloat(literal, 64)
}
