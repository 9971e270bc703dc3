package binding

// Observer receives lifecycle events from a Core.
type Observer interface {
	Mounted(container string)
	Unmounted(container string)
	Reconfigured(container string)
	ValueSynced(container string)
	Updated(container string, docChanged bool)
	Failed(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Mounted(string) {}
func (nopObserver) Unmounted(string) {}
func (nopObserver) Reconfigured(string) {}
func (nopObserver) ValueSynced(string) {}
func (nopObserver) Updated(string, bool) {}
func (nopObserver) Failed(string, error) {}
