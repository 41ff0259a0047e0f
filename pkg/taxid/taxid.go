// Package taxid valida la davčna številka eslovena (8 dígitos, control módulo 11).
package taxid

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos aplicados a los 7 primeros dígitos, de izquierda a derecha.
var weights = [7]int{8, 7, 6, 5, 4, 3, 2}

// Digits extrae los dígitos de s ignorando el prefijo "SI", espacios y guiones.
func Digits(s string) string {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "SI")
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CheckDigit calcula el dígito de control para los 7 primeros dígitos.
// Un resto 0 no tiene dígito válido: esos números no se emiten.
func CheckDigit(base string) (byte, error) {
	if len(base) < 7 {
		return 0, fmt.Errorf("taxid: se requieren 7 dígitos, se encontraron %d", len(base))
	}
	var sum int
	for i := 0; i < 7; i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	ctrl := 11 - sum%11
	switch ctrl {
	case 11:
		return 0, fmt.Errorf("taxid: %s no admite dígito de control", base[:7])
	case 10:
		ctrl = 0
	}
	return byte('0' + ctrl), nil
}

// Validate comprueba longitud y dígito de control de una davčna številka.
// Acepta "12345679", "SI12345679" o "SI 1234 5679".
func Validate(s string) error {
	d := Digits(s)
	if len(d) != 8 {
		return fmt.Errorf("taxid: debe tener 8 dígitos, se encontraron %d", len(d))
	}
	want, err := CheckDigit(d)
	if err != nil {
		return err
	}
	if d[7] != want {
		return fmt.Errorf("taxid: dígito de control inválido: esperado %c, recibido %c", want, d[7])
	}
	return nil
}

// VATNumber devuelve el identificador DDV "SI<8 dígitos>" si s es válido; si no, s recortado.
func VATNumber(s string) string {
	if Validate(s) != nil {
		return strings.TrimSpace(s)
	}
	return "SI" + Digits(s)
}
