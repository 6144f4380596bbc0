// Package config loads service configuration with Viper from config.yml,
// an optional .env file and the process environment.
//
// Every key of the target struct can be set from the environment:
// auth.jwt.secret is AUTH_JWT_SECRET. Short aliases such as PORT map onto
// a key but lose to the qualified name when both are set.
package config
