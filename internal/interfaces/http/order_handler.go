package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/orders"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/pkg/validator"
)

// OrderHandler maneja el ciclo de vida de órdenes de compra (protegido).
type OrderHandler struct {
	uc  *orders.OrderUseCase
	val *validator.Validator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, val *validator.Validator) *OrderHandler {
	return &OrderHandler{uc: uc, val: val}
}

func toOrderResponse(o *entity.PurchaseOrder) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			QuantityOrdered:  it.QuantityOrdered,
			UnitPrice:        it.UnitPrice,
			QuantityReceived: it.QuantityReceived,
		})
	}
	return dto.OrderResponse{
		ID:                   o.ID,
		SupplierID:           o.SupplierID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		ActualDeliveryDate:   o.ActualDeliveryDate,
		Status:               string(o.Status),
		Notes:                o.Notes,
		TotalAmount:          o.TotalAmount(),
		CreatedByUserID:      o.CreatedByUserID,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		Items:                items,
	}
}

func toOrderInput(id string, in dto.SaveOrderRequest) orders.OrderInput {
	items := make([]orders.OrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, orders.OrderItemInput{
			ProductID:       it.ProductID,
			QuantityOrdered: it.QuantityOrdered,
			UnitPrice:       it.UnitPrice,
		})
	}
	orderDate := time.Now().UTC()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	return orders.OrderInput{
		ID:                   id,
		SupplierID:           in.SupplierID,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Notes:                in.Notes,
		Items:                items,
	}
}

// Create godoc
// @Summary      Crear orden de compra (estado inicial PENDING)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveOrderRequest  true  "Orden con sus líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Proveedor o producto inexistente"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.val.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateOrUpdate(c.UserContext(), toOrderInput("", in), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(out))
}

// Update godoc
// @Summary      Actualizar orden (las líneas enviadas reemplazan a las existentes)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SaveOrderRequest  true  "Orden con sus líneas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "Orden en estado terminal"
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.val.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateOrUpdate(c.UserContext(), toOrderInput(id, in), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(out))
}

// GetByID godoc
// @Summary      Obtener orden por ID (con líneas)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(out))
}

// List godoc
// @Summary      Listar órdenes (filtros: status, supplier_id, from/to)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var (
		list []*entity.PurchaseOrder
		err  error
	)
	switch {
	case c.Query("status") != "":
		list, err = h.uc.ListByStatus(c.UserContext(), entity.OrderStatus(c.Query("status")))
	case c.Query("supplier_id") != "":
		list, err = h.uc.ListBySupplier(c.UserContext(), c.Query("supplier_id"))
	case c.Query("from") != "" || c.Query("to") != "":
		from, perr := time.Parse(time.RFC3339, c.Query("from"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		to, perr := time.Parse(time.RFC3339, c.Query("to"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		list, err = h.uc.ListByDateRange(c.UserContext(), from, to)
	default:
		page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
		page.DefaultPage()
		if page.Limit > 100 {
			page.Limit = 100
		}
		list, err = h.uc.List(c.UserContext(), page.Limit, page.Offset)
	}
	if err != nil {
		return respondDomainError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(dto.OrderListResponse{Items: items})
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse  "Transición no permitida"
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.val.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.UpdateStatus(c.UserContext(), id, entity.OrderStatus(in.Status), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// ReceiveFull godoc
// @Summary      Recibir la orden completa (entrada de stock por cada línea pendiente)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "Orden cancelada"
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) ReceiveFull(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.ReceiveFullOrder(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden recibida"})
}

// ReceiveItem godoc
// @Summary      Recibir una cantidad adicional de una línea
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la orden"
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.ReceiveItemRequest  true  "Cantidad adicional recibida"
// @Success      200     {object}  dto.MessageResponse
// @Failure      400     {object}  dto.ErrorResponse  "Cantidad excede lo ordenado"
// @Router       /api/orders/{id}/items/{itemId}/receive [post]
func (h *OrderHandler) ReceiveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	itemID := c.Params("itemId")
	if id == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id e itemId son requeridos"})
	}
	var in dto.ReceiveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.val.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.ReceiveItem(c.UserContext(), id, itemID, in.Quantity, GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "línea recibida"})
}
