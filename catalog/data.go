package catalog

import "slices"

var caregivers = map[ServiceType][]Caregiver{
	ServiceHomeCare: {
		{
			ID: "hc-001", Name: "王秀英", Age: 48, Gender: "female", Hometown: "四川成都",
			ServiceType: ServiceHomeCare, Qualification: HomeWorker,
			Experience: 8, Rating: 4.9, ServiceCount: 326,
			Skills:       []string{"家常菜", "老人陪伴", "居家保洁"},
			Certificates: []string{"家政服务员证", "健康证"},
			Introduction: "从事居家照护八年，擅长川菜和老人日常起居照料。",
			Available:    true,
		},
		{
			ID: "hc-002", Name: "李桂芳", Age: 52, Gender: "female", Hometown: "湖南长沙",
			ServiceType: ServiceHomeCare, Qualification: PersonalCareWorker,
			Experience: 11, Rating: 4.8, ServiceCount: 412,
			Skills:       []string{"失能照护", "助浴", "喂食"},
			Certificates: []string{"养老护理员证（中级）", "健康证"},
			Introduction: "长期照护失能老人，耐心细致。",
			Available:    true,
		},
		{
			ID: "hc-003", Name: "张建国", Age: 45, Gender: "male", Hometown: "河南郑州",
			ServiceType: ServiceHomeCare, Qualification: PersonalCareWorker,
			Experience: 6, Rating: 4.7, ServiceCount: 198,
			Skills:       []string{"男性老人照护", "翻身拍背", "轮椅转移"},
			Certificates: []string{"养老护理员证（初级）"},
			Introduction: "力气大，擅长照护行动不便的男性长者。",
			Available:    false,
		},
		{
			ID: "hc-004", Name: "陈美玲", Age: 39, Gender: "female", Hometown: "广东佛山",
			ServiceType: ServiceHomeCare, Qualification: HomeWorker,
			Experience: 4, Rating: 4.6, ServiceCount: 87,
			Skills:       []string{"粤菜", "营养配餐"},
			Certificates: []string{"家政服务员证", "营养配餐员证"},
			Introduction: "注重饮食营养搭配，适合需要控糖控盐的长者。",
			Available:    true,
		},
	},
	ServiceHospitalEscort: {
		{
			ID: "he-001", Name: "刘红梅", Age: 46, Gender: "female", Hometown: "江苏南京",
			ServiceType: ServiceHospitalEscort, Qualification: RegisteredNurse,
			Experience: 15, Rating: 5.0, ServiceCount: 530,
			Skills:       []string{"术后护理", "输液观察", "陪诊挂号"},
			Certificates: []string{"护士执业证书"},
			Introduction: "三甲医院退休护士，熟悉就诊流程。",
			Available:    true,
		},
		{
			ID: "he-002", Name: "赵德明", Age: 50, Gender: "male", Hometown: "山东济南",
			ServiceType: ServiceHospitalEscort, Qualification: PersonalCareWorker,
			Experience: 9, Rating: 4.8, ServiceCount: 301,
			Skills:       []string{"夜间陪护", "协助检查"},
			Certificates: []string{"医疗护理员证"},
			Introduction: "擅长夜间陪护，作息规律。",
			Available:    true,
		},
		{
			ID: "he-003", Name: "孙丽", Age: 42, Gender: "female", Hometown: "浙江杭州",
			ServiceType: ServiceHospitalEscort, Qualification: PersonalCareWorker,
			Experience: 7, Rating: 4.7, ServiceCount: 215,
			Skills:       []string{"陪诊取药", "病历整理"},
			Certificates: []string{"医疗护理员证"},
			Introduction: "细心周到，熟悉各大医院科室分布。",
			Available:    true,
		},
	},
	ServiceRehabNursing: {
		{
			ID: "rn-001", Name: "周晓燕", Age: 38, Gender: "female", Hometown: "北京",
			ServiceType: ServiceRehabNursing, Qualification: RegisteredNurse,
			Experience: 12, Rating: 4.9, ServiceCount: 288,
			Skills:       []string{"康复训练", "压疮护理", "鼻饲"},
			Certificates: []string{"护士执业证书", "康复治疗师证"},
			Introduction: "专注中风后康复护理。",
			Available:    true,
		},
		{
			ID: "rn-002", Name: "吴强", Age: 44, Gender: "male", Hometown: "湖北武汉",
			ServiceType: ServiceRehabNursing, Qualification: PersonalCareWorker,
			Experience: 8, Rating: 4.6, ServiceCount: 176,
			Skills:       []string{"肢体按摩", "步态训练"},
			Certificates: []string{"养老护理员证（高级）"},
			Introduction: "擅长骨折术后的肢体功能恢复。",
			Available:    true,
		},
	},
}

var reviews = map[string][]CaregiverReview{
	"hc-001": {
		{
			ID: "r-1001", CaregiverID: "hc-001", UserName: "陈先生", Rating: 5,
			Content:     "王阿姨做饭很好吃，老人很喜欢她。",
			Tags:        []string{"厨艺好", "有耐心"},
			ServiceType: ServiceHomeCare, HelpfulCount: 12,
			CreatedAt: date("2024-03-02"),
		},
		{
			ID: "r-1002", CaregiverID: "hc-001", UserName: "林女士", Rating: 5,
			Content:     "干活利索，家里收拾得很干净。",
			ServiceType: ServiceHomeCare, HelpfulCount: 4,
			CreatedAt: date("2024-01-18"),
		},
	},
	"hc-002": {
		{
			ID: "r-1003", CaregiverID: "hc-002", UserName: "黄女士", Rating: 4,
			Content:     "照顾卧床的母亲很专业，就是话少了点。",
			Tags:        []string{"专业"},
			ServiceType: ServiceHomeCare, HelpfulCount: 7,
			CreatedAt: date("2024-02-11"),
		},
	},
	"he-001": {
		{
			ID: "r-2001", CaregiverID: "he-001", UserName: "周先生", Rating: 5,
			Content:     "刘护士经验丰富，术后护理非常到位。",
			Tags:        []string{"专业", "准时"},
			ServiceType: ServiceHospitalEscort, HelpfulCount: 21,
			CreatedAt: date("2024-03-09"),
		},
	},
	"rn-001": {
		{
			ID: "r-3001", CaregiverID: "rn-001", UserName: "郑女士", Rating: 5,
			Content:     "父亲中风后恢复得很快，感谢周老师。",
			ServiceType: ServiceRehabNursing, HelpfulCount: 15,
			CreatedAt: date("2024-02-27"),
		},
	},
}

var servicePackages = []ServicePackage{
	{
		ID: "pkg-daily", Name: "日常照护套餐", ServiceType: ServiceHomeCare,
		Description: "上门协助老人起居、做饭和居家清洁。",
		Duration:    "4小时/次",
		Features:    []string{"起居照料", "做饭", "居家清洁"},
		Tiers: []PriceTier{
			{Qualification: HomeWorker, Price: 160, Unit: "次"},
			{Qualification: PersonalCareWorker, Price: 200, Unit: "次"},
			{Qualification: RegisteredNurse, Price: 320, Unit: "次"},
		},
	},
	{
		ID: "pkg-escort", Name: "就医陪诊套餐", ServiceType: ServiceHospitalEscort,
		Description: "全程陪同挂号、检查、取药和送返。",
		Duration:    "半天",
		Features:    []string{"挂号", "陪同检查", "取药", "送返"},
		Tiers: []PriceTier{
			{Qualification: PersonalCareWorker, Price: 180, Unit: "次"},
			{Qualification: RegisteredNurse, Price: 280, Unit: "次"},
		},
	},
	{
		ID: "pkg-night", Name: "住院夜间陪护", ServiceType: ServiceHospitalEscort,
		Description: "夜间病房陪护，协助如厕、翻身和呼叫医护。",
		Duration:    "20:00-08:00",
		Features:    []string{"夜间陪护", "协助如厕", "翻身"},
		Tiers: []PriceTier{
			{Qualification: PersonalCareWorker, Price: 260, Unit: "晚"},
		},
	},
	{
		ID: "pkg-rehab", Name: "康复护理套餐", ServiceType: ServiceRehabNursing,
		Description: "由专业人员上门进行康复训练和专科护理。",
		Duration:    "2小时/次",
		Features:    []string{"康复训练", "专科护理", "康复评估"},
		Tiers: []PriceTier{
			{Qualification: RegisteredNurse, Price: 300, Unit: "次"},
			{Qualification: PersonalCareWorker, Price: 220, Unit: "次"},
		},
	},
}

var topics = []Topic{
	{
		ID: "1", Name: "慢病管理", Description: "高血压、糖尿病等慢性病的日常管理经验交流",
		Followers: 12842, Posts: 3201, Trend: "up",
		Tags: []string{"高血压", "糖尿病", "用药"}, CreatedAt: date("2023-06-01"),
	},
	{
		ID: "2", Name: "养生食谱", Description: "适合老年人的营养食谱与饮食禁忌",
		Followers: 9630, Posts: 2210, Trend: "up",
		Tags: []string{"饮食", "营养", "食谱"}, CreatedAt: date("2023-06-15"),
	},
	{
		ID: "3", Name: "康复训练", Description: "术后与中风康复的训练方法分享",
		Followers: 5310, Posts: 904, Trend: "stable",
		Tags: []string{"康复", "运动", "中风"}, CreatedAt: date("2023-07-20"),
	},
	{
		ID: "4", Name: "照护者之家", Description: "家庭照护者的经验、压力与互助",
		Followers: 7421, Posts: 1876, Trend: "up",
		Tags: []string{"照护", "心理", "互助"}, CreatedAt: date("2023-08-05"),
	},
	{
		ID: "5", Name: "智能设备", Description: "Smart watches, blood pressure monitors and other health gadgets",
		Followers: 3105, Posts: 512, Trend: "down",
		Tags: []string{"设备", "血压计", "smartwatch"}, CreatedAt: date("2023-09-12"),
	},
	{
		ID: "6", Name: "广场舞与健身", Description: "适合长者的运动和兴趣活动",
		Followers: 15220, Posts: 4410, Trend: "stable",
		Tags: []string{"运动", "兴趣", "社交"}, CreatedAt: date("2023-10-01"),
	},
}

var products = []Product{
	{ID: 1, Name: "低糖燕麦片", Category: "粮油", Price: 29.9, Unit: "袋"},
	{ID: 2, Name: "高钙奶粉", Category: "乳品", Price: 88, Unit: "罐"},
	{ID: 3, Name: "有机小米", Category: "粮油", Price: 19.5, Unit: "袋"},
	{ID: 4, Name: "无糖豆浆粉", Category: "冲饮", Price: 35, Unit: "袋"},
	{ID: 5, Name: "新鲜鸡蛋", Category: "生鲜", Price: 15.8, Unit: "盒"},
	{ID: 6, Name: "深海鱼油", Category: "保健", Price: 128, Unit: "瓶"},
}

// The accessors below return deep copies, so callers may modify the records
// without affecting the catalogs.

// Caregivers returns the caregivers of service type t, in catalog order.
func Caregivers(t ServiceType) []Caregiver {
	return cloneEach(caregivers[t], Caregiver.clone)
}

// Reviews returns a copy of the initial caregiver reviews, keyed by caregiver
// ID, newest first.
func Reviews() map[string][]CaregiverReview {
	out := make(map[string][]CaregiverReview, len(reviews))
	for id, rs := range reviews {
		out[id] = cloneEach(rs, CaregiverReview.clone)
	}
	return out
}

// ServicePackages returns all service packages, in catalog order.
func ServicePackages() []ServicePackage {
	return cloneEach(servicePackages, ServicePackage.clone)
}

// Topics returns all community topics, in declaration order.
func Topics() []Topic {
	return cloneEach(topics, Topic.clone)
}

// Products returns the grocery products.
func Products() []Product {
	return slices.Clone(products)
}

func cloneEach[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

func (c Caregiver) clone() Caregiver {
	c.Skills = slices.Clone(c.Skills)
	c.Certificates = slices.Clone(c.Certificates)
	return c
}

func (r CaregiverReview) clone() CaregiverReview {
	r.Tags = slices.Clone(r.Tags)
	return r
}

func (p ServicePackage) clone() ServicePackage {
	p.Features = slices.Clone(p.Features)
	p.Tiers = slices.Clone(p.Tiers)
	return p
}

func (t Topic) clone() Topic {
	t.Tags = slices.Clone(t.Tags)
	return t
}
