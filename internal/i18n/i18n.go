package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 站点语言常量
const (
	LocaleES = "es"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleES

var messages = map[string]map[string]string{
	LocaleES: {
		"error.internal":            "Error interno del servidor",
		"error.bad_request":         "Solicitud inválida",
		"error.not_found":           "Recurso no encontrado",
		"error.unauthorized":        "No autenticado",
		"error.forbidden":           "No tienes permiso para esta operación",
		"error.token_invalid":       "Token inválido o expirado",
		"error.token_revoked":       "El token ha sido revocado, inicia sesión de nuevo",
		"error.auth_header_missing": "Falta el encabezado de autenticación",
		"error.auth_header_invalid": "Encabezado de autenticación inválido",
		"error.jwt_secret_missing":  "Autenticación no configurada en el servidor",
		"error.rate_limited":        "Demasiados intentos, inténtalo más tarde",

		"error.captcha_required": "Se requiere el código captcha",
		"error.captcha_invalid":  "Código captcha incorrecto",

		"error.email_invalid":        "Debes ingresar un correo válido",
		"error.email_exists":         "Ya existe un usuario con ese correo",
		"error.password_policy":      "La contraseña debe tener entre 6 y 20 caracteres",
		"error.password_mismatch":    "La contraseña y la confirmación no son iguales",
		"error.invalid_credentials":  "Correo o contraseña incorrectos",
		"error.email_not_verified":   "Debes confirmar tu correo antes de iniciar sesión",
		"error.user_disabled":        "La cuenta está deshabilitada",
		"error.user_not_found":       "Usuario no encontrado",
		"error.old_password_invalid": "La contraseña actual es incorrecta",
		"error.verify_code_invalid":  "El código de verificación es inválido o ha expirado",

		"error.country_not_found":  "País no encontrado",
		"error.country_name_taken": "Ya existe un país con el mismo nombre",
		"error.state_not_found":    "Estado/Departamento no encontrado",
		"error.state_name_taken":   "Ya existe un estado/departamento con el mismo nombre en el país",
		"error.city_not_found":     "Ciudad no encontrada",
		"error.city_name_taken":    "Ya existe una ciudad con el mismo nombre en el estado",

		"error.category_not_found":  "Categoría no encontrada",
		"error.category_name_taken": "Ya existe una categoría con el mismo nombre",

		"error.product_not_found":      "Producto no encontrado",
		"error.product_name_taken":     "Ya existe un producto con el mismo nombre",
		"error.product_invalid_price":  "El precio debe ser mayor que cero",
		"error.product_invalid_stock":  "El inventario no puede ser negativo",
		"error.product_inactive":       "El producto no está disponible",
		"error.product_category_empty": "Debes seleccionar al menos una categoría",

		"error.cart_item_not_found":  "El artículo del carrito no existe",
		"error.cart_invalid_qty":     "La cantidad debe ser mayor que cero",
		"error.cart_empty":           "El carrito está vacío",
		"error.order_not_found":      "Pedido no encontrado",
		"error.order_bad_transition": "El cambio de estado del pedido no está permitido",
		"error.insufficient_stock":   "Lo sentimos, no tenemos inventario suficiente de %s",

		"error.admin_login_invalid":         "Usuario o contraseña incorrectos",
		"error.admin_username_invalid":      "El nombre de usuario debe tener entre 3 y 30 caracteres",
		"error.admin_username_exists":       "Ya existe un administrador con ese nombre",
		"error.admin_create_failed":         "No se pudo crear el administrador",
		"error.admin_update_failed":         "No se pudo actualizar el administrador",
		"error.admin_delete_failed":         "No se pudo eliminar el administrador",
		"error.admin_delete_self_forbidden": "No puedes eliminar tu propia cuenta",
		"error.admin_delete_last_forbidden": "No se puede eliminar el último administrador",
		"error.admin_delete_protected":      "Este administrador está protegido y no puede eliminarse",
		"error.admin_id_invalid":            "Identificador de administrador inválido",
		"error.admin_id_type_invalid":       "Identificador de administrador inválido",

		"error.captcha_config_invalid":  "La configuración del captcha es inválida",
		"error.captcha_generate_failed": "No se pudo generar el captcha",
		"error.captcha_unavailable":     "El servicio de captcha no está disponible",
		"error.captcha_verify_failed":   "No se pudo verificar el captcha",

		"error.login_invalid":           "Correo o contraseña incorrectos",
		"error.login_failed":            "No se pudo iniciar sesión, inténtalo de nuevo",
		"error.login_too_many":          "Demasiados intentos de inicio de sesión, espera un momento",
		"error.register_failed":         "No se pudo completar el registro",
		"error.reset_failed":            "No se pudo restablecer la contraseña",
		"error.save_failed":             "No se pudo guardar la información",
		"error.send_verify_code_failed": "No se pudo enviar el código de verificación",
		"error.email_confirm_failed":    "No se pudo confirmar el correo",
		"error.password_weak":           "La contraseña es demasiado débil",
		"error.password_old_invalid":    "La contraseña actual es incorrecta",

		"error.verify_code_expired":           "El código de verificación ha expirado",
		"error.verify_code_too_frequent":      "Ya enviamos un código hace poco, espera antes de pedir otro",
		"error.verify_code_attempts_exceeded": "Demasiados intentos fallidos, solicita un código nuevo",
		"error.verify_purpose_invalid":        "El propósito del código de verificación es inválido",

		"error.email_recipient_not_found":    "El destinatario del correo no existe",
		"error.email_service_not_configured": "El servicio de correo no está configurado",

		"error.user_fetch_failed":           "No se pudo consultar el usuario",
		"error.user_update_failed":          "No se pudo actualizar el usuario",
		"error.user_id_invalid":             "Identificador de usuario inválido",
		"error.user_id_type_invalid":        "Identificador de usuario inválido",
		"error.user_login_log_fetch_failed": "No se pudo consultar el historial de accesos",

		"error.geo_fetch_failed":  "No se pudo consultar la información geográfica",
		"error.geo_save_failed":   "No se pudo guardar la información geográfica",
		"error.geo_delete_failed": "No se pudo eliminar la información geográfica",

		"error.category_fetch_failed":  "No se pudo consultar la categoría",
		"error.category_create_failed": "No se pudo crear la categoría",
		"error.category_update_failed": "No se pudo actualizar la categoría",
		"error.category_delete_failed": "No se pudo eliminar la categoría",
		"error.category_in_use":        "La categoría tiene productos asociados y no puede eliminarse",

		"error.product_fetch_failed":        "No se pudo consultar el producto",
		"error.product_create_failed":       "No se pudo crear el producto",
		"error.product_update_failed":       "No se pudo actualizar el producto",
		"error.product_delete_failed":       "No se pudo eliminar el producto",
		"error.product_price_invalid":       "El precio debe ser mayor que cero",
		"error.product_stock_invalid":       "El inventario no puede ser negativo",
		"error.product_not_available":       "El producto no está disponible",
		"error.product_categories_required": "Debes seleccionar al menos una categoría",

		"error.cart_fetch_failed":  "No se pudo consultar el carrito",
		"error.cart_update_failed": "No se pudo actualizar el carrito",
		"error.quantity_invalid":   "La cantidad debe ser mayor que cero",

		"error.order_create_failed":      "No se pudo crear el pedido",
		"error.order_fetch_failed":       "No se pudo consultar el pedido",
		"error.order_update_failed":      "No se pudo actualizar el pedido",
		"error.order_transition_invalid": "El cambio de estado del pedido no está permitido",

		"error.config_fetch_failed":    "No se pudo consultar la configuración",
		"error.rate_limit_unavailable": "El control de frecuencia no está disponible, inténtalo más tarde",

		"status.new":       "Nuevo",
		"status.confirmed": "Confirmado",
		"status.shipped":   "Enviado",
		"status.delivered": "Entregado",
		"status.cancelled": "Cancelado",

		"error.password_min_length": "La contraseña debe tener al menos %d caracteres",
		"error.password_max_length": "La contraseña no puede superar %d caracteres",

		"email.verify_code.subject":          "Código de verificación",
		"email.verify_code.subject_register": "Confirma tu correo",
		"email.verify_code.subject_reset":    "Código para restablecer tu contraseña",
		"email.verify_code.body":             "Tu código de verificación es: %s\n\nNo compartas este código con nadie.",

		"email.order_status.subject": "Tu pedido %s ahora está: %s",
		"email.order_status.body":    "Hola,\n\nEl estado de tu pedido %s cambió a %s.\n\nTotal: %s\n\nGracias por tu compra.",
	},
	LocaleEN: {
		"error.internal":            "Internal server error",
		"error.bad_request":         "Invalid request",
		"error.not_found":           "Resource not found",
		"error.unauthorized":        "Not authenticated",
		"error.forbidden":           "You do not have permission for this operation",
		"error.token_invalid":       "Invalid or expired token",
		"error.token_revoked":       "Token has been revoked, please sign in again",
		"error.auth_header_missing": "Missing authorization header",
		"error.auth_header_invalid": "Invalid authorization header",
		"error.jwt_secret_missing":  "Authentication is not configured on the server",
		"error.rate_limited":        "Too many attempts, try again later",

		"error.captcha_required": "Captcha code is required",
		"error.captcha_invalid":  "Captcha code is incorrect",

		"error.email_invalid":        "A valid email address is required",
		"error.email_exists":         "A user with that email already exists",
		"error.password_policy":      "Password must be between 6 and 20 characters",
		"error.password_mismatch":    "Password and confirmation do not match",
		"error.invalid_credentials":  "Incorrect email or password",
		"error.email_not_verified":   "You must confirm your email before signing in",
		"error.user_disabled":        "Account is disabled",
		"error.user_not_found":       "User not found",
		"error.old_password_invalid": "Current password is incorrect",
		"error.verify_code_invalid":  "Verification code is invalid or expired",

		"error.country_not_found":  "Country not found",
		"error.country_name_taken": "A country with the same name already exists",
		"error.state_not_found":    "State not found",
		"error.state_name_taken":   "A state with the same name already exists in the country",
		"error.city_not_found":     "City not found",
		"error.city_name_taken":    "A city with the same name already exists in the state",

		"error.category_not_found":  "Category not found",
		"error.category_name_taken": "A category with the same name already exists",

		"error.product_not_found":      "Product not found",
		"error.product_name_taken":     "A product with the same name already exists",
		"error.product_invalid_price":  "Price must be greater than zero",
		"error.product_invalid_stock":  "Stock cannot be negative",
		"error.product_inactive":       "Product is not available",
		"error.product_category_empty": "At least one category must be selected",

		"error.cart_item_not_found":  "Cart item does not exist",
		"error.cart_invalid_qty":     "Quantity must be greater than zero",
		"error.cart_empty":           "Cart is empty",
		"error.order_not_found":      "Order not found",
		"error.order_bad_transition": "Order status change is not allowed",
		"error.insufficient_stock":   "Sorry, we do not have enough stock of %s",

		"error.admin_login_invalid":         "Incorrect username or password",
		"error.admin_username_invalid":      "Username must be between 3 and 30 characters",
		"error.admin_username_exists":       "An administrator with that username already exists",
		"error.admin_create_failed":         "Could not create administrator",
		"error.admin_update_failed":         "Could not update administrator",
		"error.admin_delete_failed":         "Could not delete administrator",
		"error.admin_delete_self_forbidden": "You cannot delete your own account",
		"error.admin_delete_last_forbidden": "The last administrator cannot be deleted",
		"error.admin_delete_protected":      "This administrator is protected and cannot be deleted",
		"error.admin_id_invalid":            "Invalid administrator identifier",
		"error.admin_id_type_invalid":       "Invalid administrator identifier",

		"error.captcha_config_invalid":  "Captcha configuration is invalid",
		"error.captcha_generate_failed": "Could not generate captcha",
		"error.captcha_unavailable":     "Captcha service is unavailable",
		"error.captcha_verify_failed":   "Could not verify captcha",

		"error.login_invalid":           "Incorrect email or password",
		"error.login_failed":            "Could not sign in, please try again",
		"error.login_too_many":          "Too many login attempts, please wait a moment",
		"error.register_failed":         "Could not complete registration",
		"error.reset_failed":            "Could not reset password",
		"error.save_failed":             "Could not save information",
		"error.send_verify_code_failed": "Could not send verification code",
		"error.email_confirm_failed":    "Could not confirm email",
		"error.password_weak":           "Password is too weak",
		"error.password_old_invalid":    "Current password is incorrect",

		"error.verify_code_expired":           "Verification code has expired",
		"error.verify_code_too_frequent":      "A code was sent recently, please wait before requesting another",
		"error.verify_code_attempts_exceeded": "Too many failed attempts, request a new code",
		"error.verify_purpose_invalid":        "Verification code purpose is invalid",

		"error.email_recipient_not_found":    "Email recipient does not exist",
		"error.email_service_not_configured": "Email service is not configured",

		"error.user_fetch_failed":           "Could not fetch user",
		"error.user_update_failed":          "Could not update user",
		"error.user_id_invalid":             "Invalid user identifier",
		"error.user_id_type_invalid":        "Invalid user identifier",
		"error.user_login_log_fetch_failed": "Could not fetch login history",

		"error.geo_fetch_failed":  "Could not fetch geographic data",
		"error.geo_save_failed":   "Could not save geographic data",
		"error.geo_delete_failed": "Could not delete geographic data",

		"error.category_fetch_failed":  "Could not fetch category",
		"error.category_create_failed": "Could not create category",
		"error.category_update_failed": "Could not update category",
		"error.category_delete_failed": "Could not delete category",
		"error.category_in_use":        "Category has associated products and cannot be deleted",

		"error.product_fetch_failed":        "Could not fetch product",
		"error.product_create_failed":       "Could not create product",
		"error.product_update_failed":       "Could not update product",
		"error.product_delete_failed":       "Could not delete product",
		"error.product_price_invalid":       "Price must be greater than zero",
		"error.product_stock_invalid":       "Stock cannot be negative",
		"error.product_not_available":       "Product is not available",
		"error.product_categories_required": "At least one category must be selected",

		"error.cart_fetch_failed":  "Could not fetch cart",
		"error.cart_update_failed": "Could not update cart",
		"error.quantity_invalid":   "Quantity must be greater than zero",

		"error.order_create_failed":      "Could not create order",
		"error.order_fetch_failed":       "Could not fetch order",
		"error.order_update_failed":      "Could not update order",
		"error.order_transition_invalid": "Order status change is not allowed",

		"error.config_fetch_failed":    "Could not fetch configuration",
		"error.rate_limit_unavailable": "Rate limiting is unavailable, try again later",

		"status.new":       "New",
		"status.confirmed": "Confirmed",
		"status.shipped":   "Shipped",
		"status.delivered": "Delivered",
		"status.cancelled": "Cancelled",

		"error.password_min_length": "Password must be at least %d characters",
		"error.password_max_length": "Password cannot exceed %d characters",

		"email.verify_code.subject":          "Verification code",
		"email.verify_code.subject_register": "Confirm your email",
		"email.verify_code.subject_reset":    "Password reset code",
		"email.verify_code.body":             "Your verification code is: %s\n\nDo not share this code with anyone.",

		"email.order_status.subject": "Your order %s is now: %s",
		"email.order_status.body":    "Hello,\n\nThe status of your order %s changed to %s.\n\nTotal: %s\n\nThank you for your purchase.",
	},
}

// Normalize 归一化语言标签到支持的站点语言
func Normalize(locale string) string {
	tag := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case tag == "":
		return DefaultLocale
	case strings.HasPrefix(tag, "es"):
		return LocaleES
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 解析请求语言：优先 query lang，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	return Normalize(first)
}

// T 查询文案，缺失时回退默认语言，再缺失返回 key 本身
func T(locale, key string) string {
	normalized := Normalize(locale)
	if msg, ok := messages[normalized][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
