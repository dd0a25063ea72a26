package model

var Roads = [4]Road{
	{
		{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5},
		{5, 5}, {6, 5}, {7, 5}, {8, 5}, {9, 5}, {9, 6}, {9, 7}, {9, 8}, {9, 9},
	},
	{
		{0, 9}, {0, 8}, {0, 7}, {1, 7}, {2, 7}, {2, 6}, {2, 5}, {2, 4}, {2, 3}, {3, 3},
		{4, 3}, {5, 3}, {6, 3}, {6, 2}, {6, 1}, {7, 1}, {8, 1}, {9, 1}, {9, 2}, {9, 3},
	},
	{
		{0, 4}, {1, 4}, {1, 5}, {1, 6}, {2, 6}, {3, 6}, {3, 7}, {3, 8}, {4, 8}, {5, 8},
		{6, 8}, {6, 7}, {6, 6}, {7, 6}, {8, 6}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {9, 2},
	},
	{
		{5, 0}, {5, 1}, {6, 1}, {7, 1}, {7, 2}, {7, 3}, {6, 3}, {5, 3}, {4, 3}, {3, 3},
		{2, 3}, {2, 4}, {2, 5}, {2, 6}, {3, 6}, {4, 6}, {5, 6}, {5, 7}, {5, 8}, {5, 9},
	},
}
