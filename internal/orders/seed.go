package orders

import (
	"time"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/types"
)

// Seed returns a fresh copy of the starter dataset used on first launch and on reset.
// Every item starts READY_FOR_PICKUP.
func Seed() []Order {
	out := make([]Order, len(seedOrders))
	for i, order := range seedOrders {
		order.Items = seedItems(order.ID, order.Items)
		order.Status = DeriveOrderStatus(order.Items)
		out[i] = order
	}
	return out
}

func seedItems(orderID string, items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		item.OrderID = orderID
		item.Status = enums.ItemStatusReadyForPickup
		out[i] = item
	}
	return out
}

func seedTime(value string) types.UnixMillis {
	t, err := time.Parse(time.DateTime, value)
	if err != nil {
		panic(err)
	}
	return types.NewUnixMillis(t)
}

var seedOrders = []Order{
	{
		ID:            "689cb508900a3bc8830f49ad",
		OrderNumber:   "S08012-20250813115256771",
		StoreName:     "Advance 4313 Steffani Ln",
		StoreLocation: "4313 Steffani Ln, Houston, TX",
		CreatedAt:     seedTime("2025-08-13 15:53:45"),
		Items: []Item{
			{ID: "689cb508900a3bc8830f49b0", PartNumber: "YH145611P", Name: "Carquest Premium Disc Brake Rotor - Front", Units: 1, JobID: "689ca583900a3bc8830bf060", JobNumber: "434706"},
			{ID: "689cb508900a3bc8830f49af", PartNumber: "YH145537P", Name: "Carquest Premium Disc Brake Rotor - Rear", Units: 1, JobID: "689ca583900a3bc8830bf060", JobNumber: "434706"},
			{ID: "689cb508900a3bc8830f49b1", PartNumber: "PXD1393H", Name: "Carquest Disc Brake Pad Set - Rear", Units: 1, JobID: "689ca583900a3bc8830bf060", JobNumber: "434706"},
			{ID: "689cb508900a3bc8830f49b2", PartNumber: "PXD969H", Name: "Carquest Disc Brake Pad Set - Front", Units: 1, JobID: "689ca583900a3bc8830bf060", JobNumber: "434706"},
		},
	},
	{
		ID:            "689e3672900a3bc8832dc90f",
		OrderNumber:   "S06880-20250814151758470",
		StoreName:     "Advance 4734 Memorial Dr",
		StoreLocation: "4734 Memorial Dr, Decatur, GA",
		CreatedAt:     seedTime("2025-08-14 19:18:10"),
		Items: []Item{
			{ID: "689e3672900a3bc8832dc911", PartNumber: "YH289821P", Name: "Carquest Premium Disc Brake Rotor - Rear", Units: 2, JobID: "689d06eb900a3bc88319aa5a", JobNumber: "434873"},
			{ID: "689e3672900a3bc8832dc913", PartNumber: "PXD1391H", Name: "Carquest Disc Brake Pad Set - Rear", Units: 1, JobID: "689d06eb900a3bc88319aa5a", JobNumber: "434873"},
			{ID: "689e3672900a3bc8832dc912", PartNumber: "YH200469P", Name: "Carquest Premium Disc Brake Rotor - Front", Units: 2, JobID: "689d06eb900a3bc88319aa5a", JobNumber: "434873"},
			{ID: "689e3672900a3bc8832dc914", PartNumber: "PXD1324CH", Name: "Carquest Disc Brake Pad Set - Front", Units: 1, JobID: "689d06eb900a3bc88319aa5a", JobNumber: "434873"},
		},
	},
	{
		ID:            "689dd83e9cb40485131be8a3",
		OrderNumber:   "S05601-20250814083601546",
		StoreName:     "AA - 11439 Lebanon Rd, Mount Juliet",
		StoreLocation: "11439 Lebanon Rd, Mount Juliet, TN 37122, USA",
		CreatedAt:     seedTime("2025-08-14 12:36:15"),
		Items: []Item{
			{ID: "689dd83e9cb40485131be8a6", PartNumber: "YH145365P", Name: "Rear Rotor Replacement", Units: 1, JobID: "689dc5999cb40485131a7846", JobNumber: "434995"},
			{ID: "689dd83e9cb40485131be8a5", PartNumber: "PXD967H", Name: "Rear Pad Replacement", Units: 1, JobID: "689dc5999cb40485131a7846", JobNumber: "434995"},
			{ID: "689dd83e9cb40485131be8a7", PartNumber: "PXD1084H", Name: "Front Pad Replacement", Units: 1, JobID: "689dc5999cb40485131a7846", JobNumber: "434995"},
			{ID: "689dd83e9cb40485131be8a8", PartNumber: "YH145381P", Name: "Front Rotor Replacement", Units: 1, JobID: "689dc5999cb40485131a7846", JobNumber: "434995"},
		},
	},
	{
		ID:            "689f727e900a3bc88344d473",
		OrderNumber:   "S09254-20250815134628584",
		StoreName:     "Advance 1275 West 68th Street, Hialeah, FL, USA",
		StoreLocation: "1275 West 68th Street, Hialeah, FL, USA",
		CreatedAt:     seedTime("2025-08-15 17:46:38"),
		Items: []Item{
			{ID: "689f727e900a3bc88344d475", PartNumber: "YH737147P", Name: "Carquest Premium Disc Brake Rotor - Rear", Units: 2, JobID: "689e3403381295891605038c", JobNumber: "435174"},
			{ID: "689f727e900a3bc88344d478", PartNumber: "PXD2398H", Name: "Carquest Professional Platinum Disc Brake Pad Set - Front", Units: 1, JobID: "689e3403381295891605038c", JobNumber: "435174"},
			{ID: "689f727e900a3bc88344d476", PartNumber: "YH737139HC", Name: "Carquest Professional Disc Brake Rotor - Front", Units: 2, JobID: "689e3403381295891605038c", JobNumber: "435174"},
			{ID: "689f727e900a3bc88344d477", PartNumber: "PXD2299H", Name: "Carquest Professional Platinum Disc Brake Pad Set - Rear", Units: 1, JobID: "689e3403381295891605038c", JobNumber: "435174"},
		},
	},
	{
		ID:            "689f6f0638129589161b930e",
		OrderNumber:   "S07588-20250815133138991",
		StoreName:     "Advance 2300 Haltom Rd",
		StoreLocation: "2300 Haltom Rd, Haltom City, TX",
		CreatedAt:     seedTime("2025-08-15 17:31:50"),
		Items: []Item{
			{ID: "689f6f0638129589161b9311", PartNumber: "YH653460P", Name: "Carquest Platinum Painted Disc Brake Rotor - Front", Units: 2, JobID: "689e5ef7900a3bc88334177f", JobNumber: "435257"},
			{ID: "689f6f0638129589161b9312", PartNumber: "PXD1212H", Name: "Carquest Professional Platinum Disc Brake Pad Set - Rear", Units: 1, JobID: "689e5ef7900a3bc88334177f", JobNumber: "435257"},
			{ID: "689f6f0638129589161b9313", PartNumber: "PXD2076H", Name: "Carquest Professional Platinum Disc Brake Pad Set - Front", Units: 1, JobID: "689e5ef7900a3bc88334177f", JobNumber: "435257"},
			{ID: "689f6f0638129589161b9310", PartNumber: "YH634626P", Name: "Carquest Platinum Painted Disc Brake Rotor - Rear", Units: 2, JobID: "689e5ef7900a3bc88334177f", JobNumber: "435257"},
		},
	},
	{
		ID:            "689f50cb900a3bc8833f2f18",
		OrderNumber:   "S09336-20250815112334525",
		StoreName:     "AA -  490 E State Rd 434 - Longwood",
		StoreLocation: "490 E State Rd 434, Longwood, FL 32750, USA",
		CreatedAt:     seedTime("2025-08-15 15:22:51"),
		Items: []Item{
			{ID: "689f50cb900a3bc8833f2f1d", PartNumber: "48H6", Name: "DieHard Gold Battery  Gold Battery", Units: 1, JobID: "689f24f53812958916105880", JobNumber: "435396"},
		},
	},
	{
		ID:            "689f4ad9900a3bc8833e4daf",
		OrderNumber:   "S06880-20250815105753565",
		StoreName:     "Advance 4734 Memorial Dr",
		StoreLocation: "4734 Memorial Dr, Decatur, GA",
		CreatedAt:     seedTime("2025-08-15 14:57:30"),
		Items: []Item{
			{ID: "689f4ad9900a3bc8833e4db3", PartNumber: "YH145650P", Name: "Carquest Platinum", Units: 2, JobID: "689f462c381295891615380e", JobNumber: "435462"},
			{ID: "689f4ad9900a3bc8833e4db4", PartNumber: "PXD1056AH", Name: "Carquest Platinum Ceramic", Units: 1, JobID: "689f462c381295891615380e", JobNumber: "435462"},
			{ID: "689f4ad9900a3bc8833e4db1", PartNumber: "YH145567P", Name: "Carquest Platinum", Units: 2, JobID: "689f462c381295891615380e", JobNumber: "435462"},
			{ID: "689f4ad9900a3bc8833e4db2", PartNumber: "PXD1057H", Name: "Carquest Platinum Ceramic", Units: 1, JobID: "689f462c381295891615380e", JobNumber: "435462"},
		},
	},
}
