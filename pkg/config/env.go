package config

const (
	EnvPrefix = "KULSHY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	EnvTaxRate               = "KULSHY_TAX_RATE"
	EnvShippingStandardRate  = "KULSHY_SHIPPING_STANDARD_RATE"
	EnvShippingExpressRate   = "KULSHY_SHIPPING_EXPRESS_RATE"
	EnvFreeShippingThreshold = "KULSHY_FREE_SHIPPING_THRESHOLD"
)
