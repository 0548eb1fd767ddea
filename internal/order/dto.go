package order

// CheckoutRequestDTO checkout payload.
// swagger:model CheckoutRequestDTO
type CheckoutRequestDTO struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"        example:"123 Main St"`
	DeliveryCity    string `json:"delivery_city"    binding:"required"        example:"Los Angeles"`
	DeliveryState   string `json:"delivery_state"   binding:"required"        example:"CA"`
	DeliveryZip     string `json:"delivery_zip"     binding:"required,max=10" example:"90001"`
	CustomerName    string `json:"customer_name"    binding:"required"        example:"Ann Lee"`
	CustomerPhone   string `json:"customer_phone"   binding:"required"        example:"555-0100"`
	Note            string `json:"note"                                       example:"Ring twice"`
	PaymentToken    string `json:"payment_token"    binding:"required"        example:"tok_visa"`
}

func (d CheckoutRequestDTO) ToRequest(userID string) CheckoutRequest {
	return CheckoutRequest{
		UserID:       userID,
		PaymentToken: d.PaymentToken,
		Delivery: Delivery{
			Address:       d.DeliveryAddress,
			City:          d.DeliveryCity,
			State:         d.DeliveryState,
			Zip:           d.DeliveryZip,
			CustomerName:  d.CustomerName,
			CustomerPhone: d.CustomerPhone,
			Note:          d.Note,
		},
	}
}

// UpdateStatusRequest admin status change payload.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"preparing"`
}
