package worker

import "github.com/glimmersocial/glimmer/pkg/notifications"

type Dispatcher struct {
	jobs chan Job
	pool chan chan Job

	maxWorkers int

	config *Config
}

func NewDispatcher(maxWorkers int, config *Config) *Dispatcher {
	return &Dispatcher{
		jobs:       make(chan Job),
		pool:       make(chan chan Job),
		maxWorkers: maxWorkers,
		config:     config,
	}
}

func (d *Dispatcher) Run() {
	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(d.pool, d.config)
		worker.Start()
	}

	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for job := range d.jobs {
		go func(job Job) {
			// blocks until a worker is idle
			jobChannel := <-d.pool

			jobChannel <- job
		}(job)
	}
}

func (d *Dispatcher) Dispatch(targets []notifications.Target, notification *notifications.PushNotification) {
	go func() {
		d.jobs <- Job{Targets: targets, Notification: notification}
	}()
}
