package thermo

// Notifier receives the pipeline output whenever new data was produced and
// once more when a fault is confirmed.
type Notifier interface {
	Notify(tempC, changeRate float32, faultConfirmed bool)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(tempC, changeRate float32, faultConfirmed bool)

func (f NotifierFunc) Notify(tempC, changeRate float32, faultConfirmed bool) {
	f(tempC, changeRate, faultConfirmed)
}
