package entity

// Session es el contexto del usuario que ejecuta una operación. Se pasa explícitamente
// a los casos de uso en lugar de leerse de estado global.
type Session struct {
	UserID string
	Email  string
	Role   string
}
