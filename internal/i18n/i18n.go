package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleES = "es-ES"
	LocaleEN = "en-US"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleES
)

var messages = map[string]map[string]string{
	LocaleES: {
		"error.bad_request":            "Solicitud no válida",
		"error.internal":               "Error interno del servidor",
		"error.not_found":              "Recurso no encontrado",
		"error.rate_limited":           "Demasiadas solicitudes, inténtalo de nuevo en %d segundos",
		"error.rate_limit_unavailable": "Servicio de limitación no disponible",
		"error.cart_quantity_invalid":  "Cantidad no válida",
		"error.cart_input_invalid":     "Datos del carrito no válidos",
		"error.cart_stock_limit":       "Has alcanzado el máximo stock disponible para \"%s\" (%d unidades)",
		"error.cart_not_found":         "Carrito no encontrado",
		"error.cart_fetch_failed":      "No se pudo cargar el carrito",
		"error.cart_update_failed":     "No se pudo actualizar el carrito",
		"error.cart_rejected":          "La tienda rechazó la operación del carrito",
		"error.checkout_unavailable":   "El checkout no está disponible",
		"error.product_not_found":      "Producto no encontrado",
		"error.catalog_fetch_failed":   "No se pudo cargar el catálogo",
		"error.upstream_unavailable":   "La tienda no responde, inténtalo más tarde",
	},
	LocaleEN: {
		"error.bad_request":            "Bad request",
		"error.internal":               "Internal server error",
		"error.not_found":              "Not found",
		"error.rate_limited":           "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",
		"error.cart_quantity_invalid":  "Invalid quantity",
		"error.cart_input_invalid":     "Invalid cart input",
		"error.cart_stock_limit":       "You reached the maximum available stock for \"%s\" (%d units)",
		"error.cart_not_found":         "Cart not found",
		"error.cart_fetch_failed":      "Could not load the cart",
		"error.cart_update_failed":     "Could not update the cart",
		"error.cart_rejected":          "The store rejected the cart operation",
		"error.checkout_unavailable":   "Checkout is not available",
		"error.product_not_found":      "Product not found",
		"error.catalog_fetch_failed":   "Could not load the catalog",
		"error.upstream_unavailable":   "The store is not responding, try again later",
	},
}

// T 翻译消息 key，未命中时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(NormalizeLocale(locale), key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从 query 参数 lang 或 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return DefaultLocale
	}
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		if locale := NormalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化为受支持的语言
func NormalizeLocale(locale string) string {
	lower := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(lower, "en"):
		return LocaleEN
	case strings.HasPrefix(lower, "es"):
		return LocaleES
	default:
		return DefaultLocale
	}
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
