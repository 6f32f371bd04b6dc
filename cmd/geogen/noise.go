package main

import (
	"math"
	"math/rand"
)

// simplex is a seeded 2D simplex noise source.
type simplex struct {
	perm [512]uint8
}

func newSimplex(seed int64) *simplex {
	s := &simplex{}
	p := rand.New(rand.NewSource(seed)).Perm(256)
	for i := range s.perm {
		s.perm[i] = uint8(p[i&255])
	}
	return s
}

// gradients are the eight unit-ish directions used at lattice corners.
var gradients = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

func (s *simplex) corner(hash uint8, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	g := gradients[hash&7]
	t *= t
	return t * t * (g[0]*x + g[1]*y)
}

// at returns noise in [-1, 1].
func (s *simplex) at(x, y float64) float64 {
	k := (x + y) * skew
	i := math.Floor(x + k)
	j := math.Floor(y + k)

	u := (i + j) * unskew
	x0, y0 := x-(i-u), y-(j-u)

	di, dj := 0, 1
	if x0 > y0 {
		di, dj = 1, 0
	}

	x1, y1 := x0-float64(di)+unskew, y0-float64(dj)+unskew
	x2, y2 := x0-1+2*unskew, y0-1+2*unskew

	ii, jj := int(i)&255, int(j)&255
	n := s.corner(s.perm[ii+int(s.perm[jj])], x0, y0) +
		s.corner(s.perm[ii+di+int(s.perm[jj+dj])], x1, y1) +
		s.corner(s.perm[ii+1+int(s.perm[jj+1])], x2, y2)
	return 70 * n
}

// fbm sums octaves of noise, halving amplitude and doubling frequency each
// octave, and normalizes to [0, 1].
func (s *simplex) fbm(x, y, freq float64, octaves int) float64 {
	var total, norm float64
	amp := 1.0
	for o := 0; o < octaves; o++ {
		total += s.at(x*freq, y*freq) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return (total/norm + 1) / 2
}
