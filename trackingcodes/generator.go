package trackingcodes

import (
	"math/rand"
)

const (
	codePrefix       = "AFYA-"
	codeSuffixLength = 5
	codeCharacters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Generator interface {
	Generate() string
}

func NewGenerator() (Generator, error) {
	return &generator{
		prefix: codePrefix,
		length: codeSuffixLength,
		chars:  codeCharacters,
	}, nil
}

type generator struct {
	prefix string
	length int
	chars  string
}

func (g *generator) Generate() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = g.chars[rand.Intn(len(g.chars))]
	}
	return g.prefix + string(b)
}
