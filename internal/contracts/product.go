package contracts

// Product 외부 상품 저장소가 소유하는 상품 정보
// 이 코어는 id, 이름, 현재 재고만 읽는다
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}
