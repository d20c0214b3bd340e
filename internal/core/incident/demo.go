package incident

func ptrFloat(v float64) *float64 { return &v }

// DemoIncidents 演示数据，空库启动时写入
func DemoIncidents() []AddIncidentInput {
	return []AddIncidentInput{
		{
			ID:              "1",
			Title:           "Unauthorized Access Detected",
			Description:     "Person detected without valid access card",
			Timestamp:       "14:32:15",
			Camera:          "Camera 01 - Main Entrance",
			Location:        "Building A - Main Entrance",
			Severity:        string(SeverityCritical),
			DurationMinutes: ptrFloat(5),
			IsNew:           true,
		},
		{
			ID:              "2",
			Title:           "Motion in Restricted Area",
			Description:     "Unexpected movement detected in secure zone",
			Timestamp:       "14:28:42",
			Camera:          "Camera 03 - Server Room",
			Location:        "Building A - Server Room",
			Severity:        string(SeverityWarning),
			DurationMinutes: ptrFloat(3),
		},
		{
			ID:              "3",
			Title:           "Loitering Detection",
			Description:     "Person detected in area for extended period",
			Timestamp:       "14:15:33",
			Camera:          "Camera 05 - Parking Lot",
			Location:        "Building B - Parking Area",
			Severity:        string(SeverityInfo),
			DurationMinutes: ptrFloat(8),
		},
		{
			ID:              "4",
			Title:           "Door Left Open",
			Description:     "Security door remained open beyond normal duration",
			Timestamp:       "14:10:18",
			Camera:          "Camera 02 - Emergency Exit",
			Location:        "Building A - Emergency Exit",
			Severity:        string(SeverityWarning),
			DurationMinutes: ptrFloat(2),
		},
		{
			ID:              "5",
			Title:           "Normal Activity",
			Description:     "Routine foot traffic during business hours",
			Timestamp:       "14:05:22",
			Camera:          "Camera 04 - Lobby",
			Location:        "Building A - Main Lobby",
			Severity:        string(SeverityResolved),
			DurationMinutes: ptrFloat(1),
		},
	}
}
