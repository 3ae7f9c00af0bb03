package floorplan

func num(v float64) *float64 { return &v }

func rect(id string, number int, x, y, w, h float64) Table {
	return Table{
		ID:           id,
		Number:       number,
		X:            num(x),
		Y:            num(y),
		Width:        num(w),
		Height:       num(h),
		BorderRadius: num(0),
	}
}

// Default is the built-in single-hall plan used when the launch parameter is
// missing. It keeps the widget usable on its own.
func Default() []Section {
	return []Section{
		{
			ID:   "f1398858-0f9f-4614-93fa-6f8d0f521dd3",
			Name: "Main hall",
			Tables: []Table{
				rect("93f7b752-a44c-4923-bc75-c650c09aa956", 1, 460, 60, 130, 60),
				rect("0fa40dd0-dd85-4fc9-b8a0-41f891da1d76", 2, 410, 650, 100, 100),
				rect("371d6255-059b-4611-9316-1c2dd6e2165a", 3, 330, 370, 150, 60),
				rect("fce460f2-d709-4f57-9278-21ce7f836061", 4, 240, 370, 150, 60),
				rect("72195031-4ef0-4767-82b1-e11033adca0b", 5, 150, 370, 150, 60),
				rect("eccc804d-06e8-4bfe-9a97-6483182be68c", 6, 90, 640, 150, 60),
				rect("e912a2d8-9aa1-4f55-9bcc-9a99e912f4c8", 7, 10, 540, 150, 60),
				rect("41429a8a-a77c-4fcb-aab6-d0aaf54700e0", 8, 20, 20, 150, 60),
				rect("aa17f2fe-e890-4286-9e48-1827a7f81b0d", 9, 120, 130, 70, 50),
				rect("cf6bcd31-42ef-4d3c-b65c-a163ab032903", 10, 200, 130, 70, 50),
				rect("b046a8db-c90d-47f5-bf4b-5c6ddbda4445", 11, 280, 130, 70, 50),
				rect("51bdf14d-9ca5-42cf-9003-c39473701411", 12, 360, 130, 70, 50),
				rect("e4acfa77-2e48-4d6a-8930-e02e657b6d23", 13, 360, 20, 70, 50),
			},
		},
	}
}
