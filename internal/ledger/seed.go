package ledger

import (
	"time"

	"givetrack/internal/core"
)

// Built-in demo catalog. The store starts from these and any persisted slot
// fully replaces its collection; users never create or edit categories.

func seedCategories() []core.Category {
	return []core.Category{
		{
			ID:          "1",
			Name:        "Healthcare",
			Description: "Support medical treatments and healthcare services for those in need.",
			Image:       "https://images.pexels.com/photos/3279196/pexels-photo-3279196.jpeg",
			Goal:        50000,
			Color:       "text-red-500",
			Icon:        "Heart",
		},
		{
			ID:          "2",
			Name:        "Clean Water",
			Description: "Help provide clean water solutions to communities facing water scarcity.",
			Image:       "https://images.pexels.com/photos/1209658/pexels-photo-1209658.jpeg",
			Goal:        30000,
			Color:       "text-blue-500",
			Icon:        "Droplets",
		},
		{
			ID:          "3",
			Name:        "Housing",
			Description: "Support affordable housing initiatives for vulnerable populations.",
			Image:       "https://images.pexels.com/photos/106399/pexels-photo-106399.jpeg",
			Goal:        75000,
			Color:       "text-yellow-500",
			Icon:        "Home",
		},
		{
			ID:          "4",
			Name:        "Education",
			Description: "Support educational programs and resources for underprivileged students.",
			Image:       "https://images.pexels.com/photos/256517/pexels-photo-256517.jpeg",
			Goal:        40000,
			Color:       "text-green-500",
			Icon:        "BookOpen",
		},
		{
			ID:          "5",
			Name:        "Food Security",
			Description: "Help provide meals and sustainable food solutions to those experiencing hunger.",
			Image:       "https://images.pexels.com/photos/6646918/pexels-photo-6646918.jpeg",
			Goal:        25000,
			Color:       "text-orange-500",
			Icon:        "Utensils",
		},
		{
			ID:          "6",
			Name:        "Animal Welfare",
			Description: "Support shelters and rescue organizations caring for animals in need.",
			Image:       "https://images.pexels.com/photos/406014/pexels-photo-406014.jpeg",
			Goal:        20000,
			Color:       "text-purple-500",
			Icon:        "PawPrint",
		},
	}
}

func seedDonations() []core.Donation {
	return []core.Donation{
		{
			ID:         "1",
			Amount:     250,
			Name:       "Alex Johnson",
			Email:      "alex@example.com",
			Message:    "Happy to support this important cause!",
			CategoryID: "1",
			Date:       time.Date(2023, 5, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:         "2",
			Amount:     100,
			Name:       "Anonymous",
			Email:      "anonymous@example.com",
			Message:    "Keep up the good work",
			Anonymous:  true,
			CategoryID: "2",
			Date:       time.Date(2023, 5, 14, 15, 45, 0, 0, time.UTC),
		},
		{
			ID:         "3",
			Amount:     500,
			Name:       "Maria Garcia",
			Email:      "maria@example.com",
			Message:    "This cause is close to my heart",
			CategoryID: "3",
			Date:       time.Date(2023, 5, 13, 12, 15, 0, 0, time.UTC),
		},
		{
			ID:         "4",
			Amount:     75,
			Name:       "Jamal Wilson",
			Email:      "jamal@example.com",
			Message:    "Education matters!",
			CategoryID: "4",
			Date:       time.Date(2023, 5, 12, 9, 20, 0, 0, time.UTC),
		},
		{
			ID:         "5",
			Amount:     150,
			Name:       "Anonymous",
			Email:      "anonymous2@example.com",
			Anonymous:  true,
			CategoryID: "1",
			Date:       time.Date(2023, 5, 11, 14, 10, 0, 0, time.UTC),
		},
		{
			ID:         "6",
			Amount:     200,
			Name:       "Elena Kim",
			Email:      "elena@example.com",
			Message:    "Everyone deserves clean water",
			CategoryID: "2",
			Date:       time.Date(2023, 5, 10, 11, 5, 0, 0, time.UTC),
		},
		{
			ID:         "7",
			Amount:     300,
			Name:       "David Smith",
			Email:      "david@example.com",
			Message:    "Hope this helps someone find a safe place to live",
			CategoryID: "3",
			Date:       time.Date(2023, 5, 9, 16, 30, 0, 0, time.UTC),
		},
	}
}

func seedTestimonials() []core.Testimonial {
	return []core.Testimonial{
		{
			ID:         "1",
			Name:       "Michael Brown",
			Message:    "Donating through this platform was seamless and I appreciate the transparency in how funds are used. Will definitely donate again!",
			Role:       core.RoleDonor,
			Avatar:     "https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg",
			CategoryID: "1",
			Date:       time.Date(2023, 5, 8, 10, 15, 0, 0, time.UTC),
		},
		{
			ID:         "2",
			Name:       "Sarah Johnson",
			Message:    "The medical support I received thanks to donations changed my life. I'm forever grateful to everyone who contributed.",
			Role:       core.RoleRecipient,
			Avatar:     "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg",
			CategoryID: "1",
			Date:       time.Date(2023, 5, 7, 14, 25, 0, 0, time.UTC),
		},
		{
			ID:         "3",
			Name:       "Roberto Martinez",
			Message:    "Our community now has access to clean water thanks to these donations. The impact on our daily lives has been immeasurable.",
			Role:       core.RoleRecipient,
			Avatar:     "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg",
			CategoryID: "2",
			Date:       time.Date(2023, 5, 6, 9, 40, 0, 0, time.UTC),
		},
		{
			ID:         "4",
			Name:       "Linda Chen",
			Message:    "I love that I can choose exactly where my donation goes and see the direct impact. The progress tracking feature is fantastic!",
			Role:       core.RoleDonor,
			Avatar:     "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg",
			CategoryID: "4",
			Date:       time.Date(2023, 5, 5, 16, 55, 0, 0, time.UTC),
		},
		{
			ID:         "5",
			Name:       "James Wilson",
			Message:    "The education fund helped me pursue my dream of going to college. I'm the first in my family to attend university.",
			Role:       core.RoleRecipient,
			Avatar:     "https://images.pexels.com/photos/1681010/pexels-photo-1681010.jpeg",
			CategoryID: "4",
			Date:       time.Date(2023, 5, 4, 11, 30, 0, 0, time.UTC),
		},
	}
}
