package api

import "sync"

const LoginPath = "/login"

// Navigator représente la navigation de l'interface cliente
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// RecordingNavigator retient la redirection demandée pendant une requête
// pour que la couche HTTP la renvoie au navigateur.
type RecordingNavigator struct {
	mu       sync.Mutex
	current  string
	redirect string
}

func NewRecordingNavigator(current string) *RecordingNavigator {
	return &RecordingNavigator{current: current}
}

func (n *RecordingNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *RecordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirect = path
	n.current = path
}

// Redirect renvoie la dernière destination demandée, "" sinon
func (n *RecordingNavigator) Redirect() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirect
}
