package worker

import (
	"log"
	"time"

	"github.com/glimmersocial/glimmer/pkg/devices"
	"github.com/glimmersocial/glimmer/pkg/notifications"
)

type Config struct {
	APNS    notifications.APNS
	Limiter *notifications.Limiter
	Devices *devices.Backend
	Store   *notifications.Storage
}

type Worker struct {
	Work        chan Job
	WorkerQueue chan chan Job
	QuitChan    chan bool

	unregistered chan string
	config       *Config
}

func NewWorker(pool chan chan Job, config *Config) *Worker {
	return &Worker{
		Work:         make(chan Job),
		WorkerQueue:  pool,
		QuitChan:     make(chan bool),
		unregistered: make(chan string),
		config:       config,
	}
}

func (w *Worker) Start() {

	go w.wipeDevices()

	go func() {
		for {
			w.WorkerQueue <- w.Work

			select {
			case job := <-w.Work:
				w.handle(job)
			case <-w.QuitChan:
				close(w.unregistered)
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	go func() {
		w.QuitChan <- true
	}()
}

func (w *Worker) handle(job Job) {
	for _, target := range job.Targets {
		w.send(target, job.Notification)
	}
}

func (w *Worker) send(target notifications.Target, notification *notifications.PushNotification) {
	if !w.config.Limiter.ShouldSendNotification(target, notification) {
		return
	}

	d, err := w.config.Devices.GetDevicesForUser(target.ID)
	if err != nil {
		log.Printf("devices.GetDevicesForUser err: %v\n", err)
		return
	}

	for _, device := range d {
		err = w.config.APNS.Send(device, *notification)
		if err != nil {
			log.Printf("failed to send to device \"%s\" with error: %s\n", device, err)

			if err == notifications.ErrDeviceUnregistered {
				w.unregistered <- device
			}
		}
	}

	w.config.Limiter.SentNotification(target, notification)

	store := getNotificationForStore(notification)
	if store == nil {
		return
	}

	err = w.config.Store.Store(target.ID, store)
	if err != nil {
		log.Printf("store.Store err: %v\n", err)
	}
}

func (w *Worker) wipeDevices() {
	for device := range w.unregistered {
		log.Printf("removing device: %s", device)

		err := w.config.Devices.RemoveDevice(device)
		if err != nil {
			log.Printf("failed to remove device err: %s", err)
		}
	}
}

func getNotificationForStore(notification *notifications.PushNotification) *notifications.Notification {
	from, ok := notification.Arguments["from"].(int)
	if !ok {
		return nil
	}

	return &notifications.Notification{
		Timestamp: time.Now().Unix(),
		From:      from,
		Category:  notification.Category,
		Arguments: map[string]interface{}{"id": notification.Arguments["id"]},
	}
}
