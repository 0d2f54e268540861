// Package barcode normaliza os códigos lidos pelo leitor do tablet.
package barcode

import "strings"

// Normalize remove tudo que não for dígito. Leitores costumam enviar sufixos como \r ou espaços.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
