package domain

// RoomType 房型字典（决定床位数量）
type RoomType struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// DefaultRoomTypeCode 新放到画布上的 Room 默认 6 床
const DefaultRoomTypeCode = "B6"

// RoomTypes 与前端下拉框顺序一致
var RoomTypes = []RoomType{
	{Name: "6-Bed", Code: "B6", Quantity: 6},
	{Name: "5-Bed", Code: "B5", Quantity: 5},
	{Name: "4-Bed", Code: "B4", Quantity: 4},
	{Name: "3-Bed", Code: "B3", Quantity: 3},
	{Name: "2-Bed", Code: "B2", Quantity: 2},
	{Name: "1-Bed", Code: "B1", Quantity: 1},
	{Name: "VIP Suite", Code: "VIP", Quantity: 1},
}

// LookupRoomType 按 code 查询房型
func LookupRoomType(code string) (RoomType, bool) {
	for _, rt := range RoomTypes {
		if rt.Code == code {
			return rt, true
		}
	}
	return RoomType{}, false
}

// RoomTypeForBedCount 从已有床位数推断房型（外部装载的房间使用），VIP 不参与推断
func RoomTypeForBedCount(n int) (RoomType, bool) {
	for _, rt := range RoomTypes {
		if rt.Code != "VIP" && rt.Quantity == n {
			return rt, true
		}
	}
	return RoomType{}, false
}

// GenerateBeds 生成编号 1..n 的床位
func GenerateBeds(n int) []Bed {
	if n <= 0 {
		return nil
	}
	beds := make([]Bed, n)
	for i := range beds {
		beds[i] = Bed{BedNo: i + 1}
	}
	return beds
}
