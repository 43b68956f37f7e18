// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	repository2 "lodge/internal/domains/booking/repository"
	service2 "lodge/internal/domains/booking/service"
	"lodge/internal/domains/room/repository"
	"lodge/internal/domains/room/service"
	repository3 "lodge/internal/domains/user/repository"
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/room"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryRoom := repository.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceRoom := service.New(repositoryRoom, configConfig, redisCache, otelOtel)
	handler := room.New(serviceRoom, otelOtel)
	repositoryBooking := repository2.New(connection, repositoryRoom, otelOtel)
	detail := repository2.NewDetail(connection, otelOtel)
	user := repository3.New(connection, otelOtel)
	availability := service2.NewAvailability(repositoryBooking, repositoryRoom, otelOtel)
	kafkaClient := kafka.New(configConfig)
	publisher := service2.NewPublisher(kafkaClient, configConfig, otelOtel)
	serviceBooking := service2.New(repositoryBooking, detail, user, availability, publisher, configConfig, redisCache, otelOtel)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	domainHandlers := router.DomainHandlers{
		Room:    handler,
		Booking: bookingHandler,
	}
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	jwtJWT := jwt.New(configConfig)
	auth := middleware.NewAuthMiddleware(jwtJWT, otelOtel)
	routerRouter := router.New(configConfig, domainHandlers, appMiddleware, auth)
	httpHTTP := http.New(configConfig, connection, routerRouter)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var roomDomain = wire.NewSet(repository.New, service.New)

var bookingDomain = wire.NewSet(repository3.New, repository2.New, repository2.NewDetail, service2.NewAvailability, service2.NewPublisher, service2.New)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), room.New, booking.New, router.New)
