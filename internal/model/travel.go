package model

import "time"

type TravelPlan struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Status    string    `gorm:"size:32;not null;default:draft" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Transportation       *Transportation       `gorm:"foreignKey:TravelPlanID" json:"transportation,omitempty"`
	Accommodation        *Accommodation        `gorm:"foreignKey:TravelPlanID" json:"accommodation,omitempty"`
	GroundTransportation *GroundTransportation `gorm:"foreignKey:TravelPlanID" json:"ground_transportation,omitempty"`
}

func (TravelPlan) TableName() string {
	return "travel_plans"
}

type Transportation struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TravelPlanID uint64 `gorm:"column:travel_plan_id;uniqueIndex;not null" json:"travel_plan_id"`

	OutboundType              string     `gorm:"column:outbound_type;size:32" json:"outbound_type"`
	OutboundCarrier           string     `gorm:"column:outbound_carrier;size:120" json:"outbound_carrier"`
	OutboundNumber            string     `gorm:"column:outbound_number;size:40" json:"outbound_number"`
	OutboundDepartureLocation string     `gorm:"column:outbound_departure_location;size:120" json:"outbound_departure_location"`
	OutboundDepartureDatetime *time.Time `gorm:"column:outbound_departure_datetime" json:"outbound_departure_datetime"`
	OutboundArrivalLocation   string     `gorm:"column:outbound_arrival_location;size:120" json:"outbound_arrival_location"`
	OutboundArrivalDatetime   *time.Time `gorm:"column:outbound_arrival_datetime" json:"outbound_arrival_datetime"`
	OutboundBookingReference  string     `gorm:"column:outbound_booking_reference;size:80" json:"outbound_booking_reference"`
	OutboundSeatInfo          string     `gorm:"column:outbound_seat_info;size:40" json:"outbound_seat_info"`

	ReturnType              string     `gorm:"column:return_type;size:32" json:"return_type"`
	ReturnCarrier           string     `gorm:"column:return_carrier;size:120" json:"return_carrier"`
	ReturnNumber            string     `gorm:"column:return_number;size:40" json:"return_number"`
	ReturnDepartureLocation string     `gorm:"column:return_departure_location;size:120" json:"return_departure_location"`
	ReturnDepartureDatetime *time.Time `gorm:"column:return_departure_datetime" json:"return_departure_datetime"`
	ReturnArrivalLocation   string     `gorm:"column:return_arrival_location;size:120" json:"return_arrival_location"`
	ReturnArrivalDatetime   *time.Time `gorm:"column:return_arrival_datetime" json:"return_arrival_datetime"`
	ReturnBookingReference  string     `gorm:"column:return_booking_reference;size:80" json:"return_booking_reference"`
	ReturnSeatInfo          string     `gorm:"column:return_seat_info;size:40" json:"return_seat_info"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transportation) TableName() string {
	return "transportations"
}

type Accommodation struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TravelPlanID    uint64     `gorm:"column:travel_plan_id;uniqueIndex;not null" json:"travel_plan_id"`
	HostPropertyID  *uint64    `gorm:"column:host_property_id;index" json:"host_property_id"`
	HotelName       string     `gorm:"column:hotel_name;size:200" json:"hotel_name"`
	RoomType        string     `gorm:"column:room_type;size:32" json:"room_type"`
	CheckInDate     *time.Time `gorm:"column:check_in_date;type:date" json:"check_in_date"`
	CheckOutDate    *time.Time `gorm:"column:check_out_date;type:date" json:"check_out_date"`
	SpecialRequests string     `gorm:"column:special_requests;type:text" json:"special_requests"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	HostProperty *HostProperty `gorm:"foreignKey:HostPropertyID" json:"host_property,omitempty"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}

type GroundTransportation struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TravelPlanID    uint64     `gorm:"column:travel_plan_id;uniqueIndex;not null" json:"travel_plan_id"`
	PickupRequired  bool       `gorm:"column:pickup_required" json:"pickup_required"`
	PickupLocation  string     `gorm:"column:pickup_location;size:200" json:"pickup_location"`
	PickupDatetime  *time.Time `gorm:"column:pickup_datetime" json:"pickup_datetime"`
	DropoffRequired bool       `gorm:"column:dropoff_required" json:"dropoff_required"`
	DropoffLocation string     `gorm:"column:dropoff_location;size:200" json:"dropoff_location"`
	DropoffDatetime *time.Time `gorm:"column:dropoff_datetime" json:"dropoff_datetime"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GroundTransportation) TableName() string {
	return "ground_transportations"
}

type HostProperty struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"size:200;not null" json:"name"`
	Address          string    `gorm:"type:text" json:"address"`
	TotalSharedRooms int       `gorm:"column:total_shared_rooms" json:"total_shared_rooms"`
	TotalSingleRooms int       `gorm:"column:total_single_rooms" json:"total_single_rooms"`
	RoomsOccupied    int       `gorm:"column:rooms_occupied" json:"rooms_occupied"`
	GuestsPlaced     int       `gorm:"column:guests_placed" json:"guests_placed"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HostProperty) TableName() string {
	return "host_properties"
}

// Capacity returns the bookable room units and guest headcount for the
// property under the event's twin-share allocation rules.
func (p *HostProperty) Capacity() (rooms, guests int) {
	rooms = p.TotalSharedRooms/2 + p.TotalSingleRooms
	guests = p.TotalSharedRooms + 2*p.TotalSingleRooms
	return rooms, guests
}
