package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nosdois-service/config"
	"nosdois-service/controller"
	"nosdois-service/database"
	"nosdois-service/event"
	"nosdois-service/event/listener"
	"nosdois-service/gateway"
	"nosdois-service/router"
	"nosdois-service/socketio"
	"nosdois-service/suggest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("nosdois-service: ")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "nosdois-service",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.PostgresConnect()

	// The socket server must exist before any queued or replayed sync
	// event can reach the fan-out path.
	socket := socketio.Init(rest)

	event.RabbitMQConnect([]string{
		// Connect to queues
		event.SyncQueue,
	})

	// Run the snapshot fan-out listener
	go listener.Sync()

	// Subscribe listener channel to collection-changed events
	event.RabbitMQSubscribe([]event.RabbitMQSubscribeListener{
		{
			Queue:   event.SyncQueue,
			Channel: listener.SyncChannel,
		},
	})

	// Init event logs
	event.Init()

	gw := gateway.New(database.Postgres, event.SyncPublisher{})
	sg := suggest.New(config.Config("SUGGEST_API_URL"), config.Config("SUGGEST_API_KEY"))
	controller.Init(gw, sg)

	router.Rest(rest)
	router.Socket(socket, gw, sg)

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	socket.Close(nil)
	event.RabbitMQChannel.Close()
	event.RabbitMQConnection.Close()
	event.InLogFile.Close()
	event.OutLogFile.Close()
	os.Exit(0)
}
