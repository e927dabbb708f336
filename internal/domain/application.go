package domain

// Application es el mapa crudo de una solicitud de préstamo.
// El motor lo trata como opaco salvo los campos que cada factor lee.
type Application map[string]any

// FieldRegulatoryFramework es inyectado por el evaluador antes de puntuar;
// nunca viene en los datos originales de la solicitud.
const FieldRegulatoryFramework = "regulatory_framework"

// ID devuelve el identificador de la solicitud o "" si falta.
func (a Application) ID() string {
	return a.String("id")
}

// String lee un campo como string; campos ausentes o de otro tipo degradan a "".
func (a Application) String(field string) string {
	if a == nil {
		return ""
	}
	s, _ := a[field].(string)
	return s
}

// Float lee un campo numérico tolerando los tipos con que llega JSON o CSV.
// Ausente o malformado degrada a 0 (la solicitud se evalúa igual, ver factores).
func (a Application) Float(field string) float64 {
	v, _ := a.FloatOK(field)
	return v
}

// FloatOK es como Float pero reporta si el campo estaba presente y era numérico.
func (a Application) FloatOK(field string) (float64, bool) {
	if a == nil {
		return 0, false
	}
	switch v := a[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Has indica si el campo existe con un valor no nulo.
func (a Application) Has(field string) bool {
	if a == nil {
		return false
	}
	v, ok := a[field]
	return ok && v != nil
}

// WithField devuelve una copia superficial con el campo agregado.
// La solicitud original nunca se muta una vez en evaluación.
func (a Application) WithField(field string, value any) Application {
	out := make(Application, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[field] = value
	return out
}
